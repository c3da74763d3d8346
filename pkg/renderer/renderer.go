package renderer

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"golang.org/x/xerrors"
)

// RowSink receives finished scanlines. Rows arrive exactly once each, in
// increasing y order starting at 0, with 3 bytes (R, G, B) per pixel.
type RowSink interface {
	WriteRow(y int, rgb []byte) error
}

// RowSinkFunc adapts an ordinary function to a RowSink
type RowSinkFunc func(y int, rgb []byte) error

// WriteRow calls f(y, rgb)
func (f RowSinkFunc) WriteRow(y int, rgb []byte) error {
	return f(y, rgb)
}

// Config controls how a render is scheduled
type Config struct {
	NumWorkers       int           // Number of parallel workers (0 = auto-detect CPU count)
	Seed             int64         // Base seed for the per-worker samplers
	SceneName        string        // Tag attached to metrics and traces
	Logger           core.Logger   // Receives progress lines; nil disables them
	ProgressInterval time.Duration // Minimum spacing between progress lines (0 = every row)
}

// Renderer drives a scanline-parallel render of an immutable scene
type Renderer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     Config
}

// NewRenderer prepares a render of world as seen through a camera built from cameraConfig
func NewRenderer(world geometry.Hittable, cameraConfig CameraConfig, config Config) *Renderer {
	camera := NewCamera(cameraConfig)
	return &Renderer{
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(world, camera.Background()),
		config:     config,
	}
}

// NewRendererWithIntegrator renders through camera using a caller-supplied integrator
func NewRendererWithIntegrator(camera *Camera, integ integrator.Integrator, config Config) *Renderer {
	return &Renderer{camera: camera, integrator: integ, config: config}
}

// Camera returns the camera the renderer traces through
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render traces every pixel and hands each finished row to sink in row order.
// The render always runs to completion unless the sink reports an error;
// ctx carries trace and metric tags only.
func (r *Renderer) Render(ctx context.Context, sink RowSink) (RenderStats, error) {
	tracer := otel.Tracer("go-pathtracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Renderer.Render", trace.WithAttributes(
		attribute.Int("width", r.camera.Width()),
		attribute.Int("height", r.camera.Height()),
		attribute.Int("samples_per_pixel", r.camera.SamplesPerPixel()),
		attribute.String("scene", r.config.SceneName),
	))
	defer span.End()

	ctx, err := tag.New(ctx, tag.Upsert(sceneKey, r.config.SceneName))
	if err != nil {
		return RenderStats{}, xerrors.Errorf("while tagging render context: %w", err)
	}

	start := time.Now()
	height := r.camera.Height()
	pool := NewWorkerPool(r.camera, r.integrator, r.config.NumWorkers, r.config.Seed)

	renderStats := RenderStats{
		Width:           r.camera.Width(),
		Height:          height,
		SamplesPerPixel: r.camera.SamplesPerPixel(),
		Workers:         pool.GetNumWorkers(),
	}

	eg, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	pool.Start(gctx, eg, height)

	eg.Go(func() error {
		progress := newProgressReporter(r.config.Logger, r.config.ProgressInterval, height)
		pending := make(map[int]RowResult)
		next := 0
		for next < height {
			var result RowResult
			select {
			case result = <-pool.Results():
			case <-gctx.Done():
				return gctx.Err()
			}
			pending[result.Y] = result

			for {
				row, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := sink.WriteRow(row.Y, row.Pixels); err != nil {
					return xerrors.Errorf("while writing row %d: %w", row.Y, err)
				}
				pool.Release()
				renderStats.Add(row.Stats)
				stats.Record(ctx, rowsRendered.M(1), samplesTraced.M(row.Stats.Samples))
				next++
				progress.rowDone(next)
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		return renderStats, xerrors.Errorf("while rendering: %w", err)
	}

	renderStats.Elapsed = time.Since(start)
	stats.Record(ctx, renderDuration.M(float64(renderStats.Elapsed)/float64(time.Millisecond)))
	span.SetAttributes(attribute.Int64("samples_traced", renderStats.TotalSamples))

	return renderStats, nil
}

// RenderImage renders into an in-memory RGBA image
func (r *Renderer) RenderImage(ctx context.Context) (*image.RGBA, RenderStats, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.camera.Width(), r.camera.Height()))
	renderStats, err := r.Render(ctx, ImageSink(img))
	if err != nil {
		return nil, renderStats, err
	}
	return img, renderStats, nil
}

// ImageSink returns a RowSink that stores rows into img
func ImageSink(img *image.RGBA) RowSink {
	return RowSinkFunc(func(y int, rgb []byte) error {
		for x := 0; x*3+2 < len(rgb); x++ {
			img.SetRGBA(x, y, color.RGBA{R: rgb[3*x], G: rgb[3*x+1], B: rgb[3*x+2], A: 255})
		}
		return nil
	})
}

// progressReporter logs "rows done/total" lines, spaced out by a rate limiter
type progressReporter struct {
	logger  core.Logger
	limiter *rate.Limiter
	total   int
}

func newProgressReporter(logger core.Logger, interval time.Duration, total int) *progressReporter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &progressReporter{
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
		total:   total,
	}
}

func (p *progressReporter) rowDone(done int) {
	if p.logger == nil {
		return
	}
	if done == p.total || p.limiter.Allow() {
		p.logger.Printf("Progress: %d/%d rows", done, p.total)
	}
}
