package renderer

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	sceneKey = tag.MustNewKey("scene")

	rowsRendered   = stats.Int64("go-pathtracer/rows_rendered", "Scanlines delivered to the output sink", stats.UnitDimensionless)
	samplesTraced  = stats.Int64("go-pathtracer/samples_traced", "Camera samples traced", stats.UnitDimensionless)
	renderDuration = stats.Float64("go-pathtracer/render_duration", "Wall-clock duration of a render", stats.UnitMilliseconds)

	// RowsRenderedView counts rows written, per scene
	RowsRenderedView = &view.View{
		Name:        "go-pathtracer/rows_rendered",
		Description: "Counter of scanlines that have been written",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     rowsRendered,
		Aggregation: view.Count(),
	}

	// SamplesTracedView sums camera samples, per scene
	SamplesTracedView = &view.View{
		Name:        "go-pathtracer/samples_traced",
		Description: "Total camera samples traced",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     samplesTraced,
		Aggregation: view.Sum(),
	}

	// RenderDurationView records the distribution of render times
	RenderDurationView = &view.View{
		Name:        "go-pathtracer/render_duration",
		Description: "Distribution of render wall-clock times",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     renderDuration,
		Aggregation: view.Distribution(10, 100, 1000, 10000, 60000, 600000, 3600000),
	}
)

// RegisterViews registers the renderer's opencensus views with the default exporter set
func RegisterViews() error {
	return view.Register(RowsRenderedView, SamplesTracedView, RenderDurationView)
}

// UnregisterViews removes the views added by RegisterViews
func UnregisterViews() {
	view.Unregister(RowsRenderedView, SamplesTracedView, RenderDurationView)
}
