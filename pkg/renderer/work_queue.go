package renderer

import "sync"

// WorkQueue is a mutex-guarded stack of tiles. Workers pop from the end until
// it is empty; there is no ordering guarantee between tiles.
type WorkQueue struct {
	mu    sync.Mutex
	tiles []*Tile
}

// NewWorkQueue creates a queue holding every given tile
func NewWorkQueue(tiles []*Tile) *WorkQueue {
	q := &WorkQueue{tiles: make([]*Tile, len(tiles))}
	copy(q.tiles, tiles)
	return q
}

// Pop removes and returns the last tile. It reports false once the queue is empty.
func (q *WorkQueue) Pop() (*Tile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.tiles)
	if n == 0 {
		return nil, false
	}
	tile := q.tiles[n-1]
	q.tiles[n-1] = nil
	q.tiles = q.tiles[:n-1]
	return tile, true
}

// Len returns the number of tiles not yet handed out
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tiles)
}
