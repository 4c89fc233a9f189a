package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/cpu"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// WorkerState is the lifecycle stage of a worker
type WorkerState int32

const (
	WorkerIdle WorkerState = iota
	WorkerFetching
	WorkerRendering
	WorkerExited
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerFetching:
		return "fetching"
	case WorkerRendering:
		return "rendering"
	case WorkerExited:
		return "exited"
	}
	return fmt.Sprintf("WorkerState(%d)", int32(s))
}

// RenderFailedError reports a tile whose rendering panicked or failed
type RenderFailedError struct {
	TileID int
	Worker int
	Cause  error
}

func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("tile %d failed on worker %d: %v", e.TileID, e.Worker, e.Cause)
}

func (e *RenderFailedError) Unwrap() error {
	return e.Cause
}

// TileFunc renders one tile into the rows it owns
type TileFunc func(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error)

// DefaultWorkerCount returns the number of logical cores
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// WorkerPool runs a fixed set of workers that drain a shared queue of tiles
type WorkerPool struct {
	queue      *WorkQueue
	buffer     *PixelBuffer
	render     TileFunc
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
	aborted    atomic.Bool
	logger     core.Logger
}

// Worker pulls tiles from the queue until it is empty
type Worker struct {
	ID     int
	state  atomic.Int32
	random *core.RandomSeries
	pool   *WorkerPool // Reference to parent pool for queue and buffer access
	stats  WorkerStats
	errs   []error
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses DefaultWorkerCount.
func NewWorkerPool(queue *WorkQueue, buffer *PixelBuffer, render TileFunc, numWorkers int, logger core.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	if logger == nil {
		logger = NopLogger{}
	}

	wp := &WorkerPool{
		queue:      queue,
		buffer:     buffer,
		render:     render,
		numWorkers: numWorkers,
		logger:     logger,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:     i,
			random: core.NewRandomSeries(core.DefaultSeed),
			pool:   wp,
		})
	}

	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// State returns the current state of worker id
func (wp *WorkerPool) State(id int) WorkerState {
	return WorkerState(wp.workers[id].state.Load())
}

// Run starts every worker and blocks until all of them have exited. It
// returns the joined tile failures, or the context error if cancellation left
// tiles unrendered.
func (wp *WorkerPool) Run(ctx context.Context) ([]WorkerStats, error) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
	wp.wg.Wait()

	stats := make([]WorkerStats, len(wp.workers))
	var errs []error
	for i, worker := range wp.workers {
		stats[i] = worker.stats
		errs = append(errs, worker.errs...)
	}

	if len(errs) > 0 {
		return stats, errors.Join(errs...)
	}
	if err := ctx.Err(); err != nil && wp.queue.Len() > 0 {
		return stats, err
	}
	return stats, nil
}

func (w *Worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.setState(WorkerExited)

	for {
		if w.pool.aborted.Load() || ctx.Err() != nil {
			return
		}

		w.setState(WorkerFetching)
		tile, ok := w.pool.queue.Pop()
		if !ok {
			w.pool.logger.Printf("Worker %d finished (%d tiles)\n", w.ID, w.stats.TilesRendered)
			return
		}

		w.setState(WorkerRendering)
		if err := w.renderTile(tile); err != nil {
			w.errs = append(w.errs, err)
			w.pool.aborted.Store(true)
			w.pool.logger.Printf("Worker %d: %v\n", w.ID, err)
			return
		}
		w.setState(WorkerIdle)
	}
}

// renderTile reseeds the worker's series from the tile so output does not
// depend on which worker picked the tile up.
func (w *Worker) renderTile(tile *Tile) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderFailedError{TileID: tile.ID, Worker: w.ID, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	rows, err := w.pool.buffer.Rows(tile.StartRow, tile.EndRow)
	if err != nil {
		return &RenderFailedError{TileID: tile.ID, Worker: w.ID, Cause: err}
	}

	w.random.Reseed(tile.Seed)
	stats, err := w.pool.render(tile, rows, w.random)
	if err != nil {
		return &RenderFailedError{TileID: tile.ID, Worker: w.ID, Cause: err}
	}

	w.stats.add(stats)
	return nil
}
