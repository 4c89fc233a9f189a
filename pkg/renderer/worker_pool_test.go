package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func fillTile(value uint32) TileFunc {
	return func(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error) {
		for i := range rows {
			rows[i] = value
		}
		return TileStats{Pixels: len(rows), Samples: len(rows)}, nil
	}
}

func TestWorkerPool_DrainsQueue(t *testing.T) {
	buf := NewPixelBuffer(10, 50)
	queue := NewWorkQueue(NewTileStrips(10, 50, 17, 1))
	pool := NewWorkerPool(queue, buf, fillTile(7), 4, nil)

	stats, err := pool.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	tiles := 0
	for _, ws := range stats {
		tiles += ws.TilesRendered
	}
	if tiles != 17 {
		t.Errorf("Rendered %d tiles, want 17", tiles)
	}
	if queue.Len() != 0 {
		t.Errorf("Queue not drained: %d left", queue.Len())
	}
	for i, p := range buf.Pix {
		if p != 7 {
			t.Fatalf("Pixel %d = %d after render", i, p)
		}
	}
	for id := 0; id < pool.GetNumWorkers(); id++ {
		if s := pool.State(id); s != WorkerExited {
			t.Errorf("Worker %d in state %v after Run", id, s)
		}
	}
}

func TestWorkerPool_SamplerSeededPerTile(t *testing.T) {
	tiles := NewTileStrips(1, 64, 64, 99)
	firstDraws := make([]uint32, len(tiles))

	draw := func(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error) {
		firstDraws[tile.ID] = sampler.(*core.RandomSeries).Next()
		return TileStats{}, nil
	}
	if _, err := NewWorkerPool(NewWorkQueue(tiles), NewPixelBuffer(1, 64), draw, 6, nil).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, tile := range tiles {
		want := core.NewRandomSeries(tile.Seed).Next()
		if firstDraws[tile.ID] != want {
			t.Errorf("Tile %d: first draw %d, want %d", tile.ID, firstDraws[tile.ID], want)
		}
	}
}

func TestWorkerPool_FailureAbortsRemainingTiles(t *testing.T) {
	var rendered atomic.Int32
	cause := errors.New("boom")
	failing := func(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error) {
		rendered.Add(1)
		return TileStats{}, cause
	}

	queue := NewWorkQueue(NewTileStrips(1, 100, 100, 1))
	_, err := NewWorkerPool(queue, NewPixelBuffer(1, 100), failing, 1, nil).Run(context.Background())

	var failed *RenderFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected RenderFailedError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected error to wrap cause, got %v", err)
	}
	if failed.TileID != 99 {
		t.Errorf("Expected first popped tile 99 to fail, got %d", failed.TileID)
	}
	if n := rendered.Load(); n != 1 {
		t.Errorf("Single worker should stop after first failure, rendered %d", n)
	}
	if queue.Len() != 99 {
		t.Errorf("Expected 99 tiles left, got %d", queue.Len())
	}
}

func TestWorkerPool_PanicIsRecovered(t *testing.T) {
	panicky := func(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error) {
		if tile.ID == 3 {
			panic("bad tile")
		}
		return TileStats{Pixels: len(rows)}, nil
	}

	_, err := NewWorkerPool(NewWorkQueue(NewTileStrips(2, 8, 8, 1)), NewPixelBuffer(2, 8), panicky, 2, nil).Run(context.Background())

	var failed *RenderFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected RenderFailedError, got %v", err)
	}
	if failed.TileID != 3 {
		t.Errorf("Expected tile 3, got %d", failed.TileID)
	}
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	if n := DefaultWorkerCount(); n < 1 {
		t.Errorf("DefaultWorkerCount = %d", n)
	}
	pool := NewWorkerPool(NewWorkQueue(nil), NewPixelBuffer(1, 1), fillTile(0), 0, nil)
	if pool.GetNumWorkers() != DefaultWorkerCount() {
		t.Errorf("Expected %d workers, got %d", DefaultWorkerCount(), pool.GetNumWorkers())
	}
}

func TestWorkerState_String(t *testing.T) {
	tests := map[WorkerState]string{
		WorkerIdle:      "idle",
		WorkerFetching:  "fetching",
		WorkerRendering: "rendering",
		WorkerExited:    "exited",
		WorkerState(9):  "WorkerState(9)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int32(state), got, want)
		}
	}
}
