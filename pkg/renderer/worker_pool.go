package renderer

import (
	"context"
	"runtime"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Y int
}

// RowResult contains the encoded pixels of one finished scanline
type RowResult struct {
	Y      int
	Pixels []byte // Packed RGB bytes, 3 per pixel
	Stats  RowStats
}

// WorkerPool manages parallel scanline rendering. Tasks are handed out in
// row order, and at most window rows may be in flight or awaiting output
// at any time, so the memory used for out-of-order rows stays bounded.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	window      *semaphore.Weighted
}

// Worker renders scanlines with its own private sampler
type Worker struct {
	ID          int
	camera      *Camera
	integrator  integrator.Integrator
	sampler     core.Sampler
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Worker i draws from a sampler seeded with seed+i.
func NewWorkerPool(camera *Camera, integ integrator.Integrator, numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	window := 4 * numWorkers

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, window),
		numWorkers:  numWorkers,
		window:      semaphore.NewWeighted(int64(window)),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			camera:      camera,
			integrator:  integ,
			sampler:     core.NewSeededSampler(seed + int64(i)),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start launches the task feeder and all workers in eg. Each submitted row
// holds one window slot until Release is called for it.
func (wp *WorkerPool) Start(ctx context.Context, eg *errgroup.Group, rows int) {
	eg.Go(func() error {
		defer close(wp.taskQueue)
		for y := 0; y < rows; y++ {
			if err := wp.window.Acquire(ctx, 1); err != nil {
				return err
			}
			select {
			case wp.taskQueue <- RowTask{Y: y}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for _, worker := range wp.workers {
		worker := worker
		eg.Go(func() error {
			return worker.run(ctx)
		})
	}
}

// Results returns the channel finished rows arrive on, in completion order
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// Release frees the window slot held by a row once it has been written out
func (wp *WorkerPool) Release() {
	wp.window.Release(1)
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) error {
	for task := range w.taskQueue {
		result := w.renderRow(task.Y)
		select {
		case w.resultQueue <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// renderRow traces every sample of scanline y and encodes the averaged colors
func (w *Worker) renderRow(y int) RowResult {
	width := w.camera.Width()
	spp := w.camera.SamplesPerPixel()
	depth := w.camera.MaxDepth()

	pixels := make([]byte, 0, 3*width)
	for x := 0; x < width; x++ {
		var ps PixelStats
		for s := 0; s < spp; s++ {
			ray := w.camera.GetRay(x, y, w.sampler)
			ps.AddSample(w.integrator.RayColor(ray, depth, w.sampler))
		}
		pixels = WriteColor(pixels, ps.GetColor())
	}

	return RowResult{
		Y:      y,
		Pixels: pixels,
		Stats:  RowStats{Pixels: width, Samples: int64(width) * int64(spp)},
	}
}
