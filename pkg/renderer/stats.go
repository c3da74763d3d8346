package renderer

import (
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int64         // Total number of camera samples traced
	SamplesPerPixel int           // Samples taken per pixel
	RowsCompleted   int           // Rows delivered to the sink
	Workers         int           // Number of scanline workers used
	Elapsed         time.Duration // Wall-clock time of the render
}

// Add folds the per-row counters of other into s
func (s *RenderStats) Add(other RowStats) {
	s.TotalPixels += other.Pixels
	s.TotalSamples += other.Samples
	s.RowsCompleted++
}

// RowStats counts the work done for a single scanline
type RowStats struct {
	Pixels  int
	Samples int64
}

// PixelStats accumulates radiance samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 correction; non-positive inputs map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// componentToByte converts one linear color channel to its 8-bit encoding
func componentToByte(linear float64) byte {
	return byte(256 * intensity.Clamp(linearToGamma(linear)))
}

// WriteColor appends the 8-bit gamma-corrected encoding of an averaged pixel color to dst
func WriteColor(dst []byte, color core.Vec3) []byte {
	return append(dst,
		componentToByte(color.X),
		componentToByte(color.Y),
		componentToByte(color.Z),
	)
}
