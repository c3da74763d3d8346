// pathtracer renders the built-in scenes with a scanline-parallel path tracer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// renderFlags holds the command-line settings of the render subcommand
type renderFlags struct {
	sceneID    string
	outPath    string
	configPath string
	width      int
	samples    int
	maxDepth   int
	workers    int
	seed       int64
	seedSet    bool // --seed given explicitly
	progress   bool
}

func newRootCommand() *cobra.Command {
	cmdRoot := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Offline path tracer for the built-in demo scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmdRoot.AddCommand(newRenderCommand(), newScenesCommand())
	return cmdRoot
}

func newRenderCommand() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG or PPM file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.seedSet = cmd.Flags().Changed("seed")
			progress := f.progress || term.IsTerminal(int(os.Stderr.Fd()))
			return runRender(cmd.Context(), f, progress, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&f.sceneID, "scene", "cornell-box", "Scene to render; see the scenes command")
	cmd.Flags().StringVar(&f.outPath, "out", "", "Output path (.png or .ppm, local or gs://bucket/object); defaults to output/<scene>/render_<timestamp>.png")
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML file of camera overrides")
	cmd.Flags().IntVar(&f.width, "width", 0, "Override image width in pixels")
	cmd.Flags().IntVar(&f.samples, "spp", 0, "Override samples per pixel")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Override maximum bounce depth")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	cmd.Flags().Int64Var(&f.seed, "seed", scene.DefaultSeed, "Seed for scene construction and sampling")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "Print row progress to stderr even when it is not a terminal")
	return cmd
}

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenes(cmd.OutOrStdout())
		},
	}
}

func listScenes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGROUP\tDESCRIPTION")
	for _, info := range scene.ListScenes() {
		desc := info.Description
		if info.NeedsImages {
			desc += fmt.Sprintf(" (needs %s)", scene.EarthImage)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.ID, info.Group, desc)
	}
	return tw.Flush()
}

// resolveCamera layers the YAML config and then explicit flags over the scene's camera
func resolveCamera(base renderer.CameraConfig, cfg *loaders.RenderConfig, f *renderFlags) renderer.CameraConfig {
	camera := base
	if cfg != nil {
		camera = cfg.Apply(camera)
	}
	if f.width > 0 {
		camera.ImageWidth = f.width
	}
	if f.samples > 0 {
		camera.SamplesPerPixel = f.samples
	}
	if f.maxDepth > 0 {
		camera.MaxDepth = f.maxDepth
	}
	return camera
}

// applyConfigDefaults fills seed and worker count from the YAML config where
// the command line left them unset
func applyConfigDefaults(f *renderFlags, cfg *loaders.RenderConfig) {
	if cfg.Seed != nil && !f.seedSet {
		f.seed = *cfg.Seed
	}
	if cfg.Workers > 0 && f.workers == 0 {
		f.workers = cfg.Workers
	}
}

// defaultOutputPath follows output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneID string, now time.Time) string {
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// glogLogger sends progress lines to the verbose glog stream
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.V(1).Infof(format, args...)
}

// writerLogger prints progress lines to a terminal
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func runRender(ctx context.Context, f *renderFlags, progress bool, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := otel.Tracer("go-pathtracer/cmd")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "runRender", trace.WithAttributes(attribute.String("scene", f.sceneID)))
	defer span.End()

	var cfg *loaders.RenderConfig
	if f.configPath != "" {
		var err error
		if cfg, err = loaders.LoadRenderConfig(f.configPath); err != nil {
			return xerrors.Errorf("while loading render config: %w", err)
		}
		applyConfigDefaults(f, cfg)
	}

	_, buildSpan := tracer.Start(ctx, "scene.Build")
	s, err := scene.Build(f.sceneID, scene.Options{Seed: f.seed})
	buildSpan.End()
	if err != nil {
		return err
	}
	camera := resolveCamera(s.Camera, cfg, f)

	if err := renderer.RegisterViews(); err != nil {
		glog.Warningf("Metrics views not registered: %v", err)
	}

	var logger core.Logger = glogLogger{}
	if progress {
		logger = writerLogger{w: stderr}
	}
	r := renderer.NewRenderer(s.World, camera, renderer.Config{
		NumWorkers:       f.workers,
		Seed:             f.seed,
		SceneName:        s.Name,
		Logger:           logger,
		ProgressInterval: 250 * time.Millisecond,
	})

	outPath := f.outPath
	if outPath == "" {
		outPath = defaultOutputPath(s.Name, time.Now())
	}
	w, err := output.Open(ctx, outPath)
	if err != nil {
		return err
	}

	glog.Infof("Rendering %q at %dx%d, %d samples per pixel, max depth %d",
		s.Name, r.Camera().Width(), r.Camera().Height(), r.Camera().SamplesPerPixel(), r.Camera().MaxDepth())

	stats, err := saveRender(ctx, r, w, output.FormatForPath(outPath))
	if err != nil {
		return xerrors.Errorf("while saving %s: %w", outPath, err)
	}

	var rate float64
	if stats.Elapsed > 0 {
		rate = float64(stats.TotalSamples) / stats.Elapsed.Seconds()
	}
	glog.Infof("Rendered %s samples with %d workers in %v (%s samples/s)",
		humanize.Comma(stats.TotalSamples), stats.Workers, stats.Elapsed.Round(time.Millisecond), humanize.Comma(int64(rate)))
	glog.Infof("Render saved as %s", outPath)
	return nil
}

// saveRender publishes the output only when the whole render was written;
// on any failure the partial output is discarded
func saveRender(ctx context.Context, r *renderer.Renderer, w output.Writer, format output.Format) (renderer.RenderStats, error) {
	stats, err := renderTo(ctx, r, w, format)
	if err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			glog.Warningf("Partial output not discarded: %v", abortErr)
		}
		return stats, err
	}
	if err := w.Close(); err != nil {
		return stats, err
	}
	return stats, nil
}

// renderTo streams PPM rows straight to w; PNG needs the whole image first
func renderTo(ctx context.Context, r *renderer.Renderer, w io.Writer, format output.Format) (renderer.RenderStats, error) {
	if format == output.FormatPPM {
		ppm, err := output.NewPPMWriter(w, r.Camera().Width(), r.Camera().Height())
		if err != nil {
			return renderer.RenderStats{}, err
		}
		stats, err := r.Render(ctx, ppm)
		if err != nil {
			return stats, err
		}
		return stats, ppm.Flush()
	}

	img, stats, err := r.RenderImage(ctx)
	if err != nil {
		return stats, err
	}
	return stats, output.Encode(w, img, format)
}

func main() {
	defer glog.Flush()
	glog.CopyStandardLogTo("INFO")

	cmdRoot := newRootCommand()
	// glog reads its settings from the go flag set, which cobra fills in
	cobra.OnInitialize(func() { flag.CommandLine.Parse(nil) })

	if err := cmdRoot.ExecuteContext(context.Background()); err != nil {
		glog.Exitf("%v", err)
	}
}
