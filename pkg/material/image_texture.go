package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// missingImageColor is returned when a texture has no pixel data
	missingImageColor = core.NewVec3(0, 1, 1)
	// invalidUVColor is returned for NaN surface coordinates
	invalidUVColor = core.NewVec3(1, 0, 1)
)

const colorScale = 1.0 / 255.0

// ImageTexture provides color from a decoded RGB image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major RGB triples: Pixels[3*(y*Width+x)]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at (u, v) using nearest-neighbor lookup.
// Out-of-range coordinates are clamped to the image edge.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < 3*t.Width*t.Height {
		return missingImageColor
	}
	if math.IsNaN(u) || math.IsNaN(v) {
		return invalidUVColor
	}

	unit := core.NewInterval(0, 1)
	u = unit.Clamp(u)
	// Image rows run top to bottom
	v = 1.0 - unit.Clamp(v)

	x := clampIndex(int(u*float64(t.Width)), t.Width)
	y := clampIndex(int(v*float64(t.Height)), t.Height)

	i := 3 * (y*t.Width + x)
	return core.NewVec3(
		colorScale*float64(t.Pixels[i]),
		colorScale*float64(t.Pixels[i+1]),
		colorScale*float64(t.Pixels[i+2]),
	)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
