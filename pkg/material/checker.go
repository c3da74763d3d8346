package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CheckerTexture alternates between two textures on a 3D lattice of cubes
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker pattern with cells of edge length scale
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value selects the even or odd texture by the parity of the cell containing p
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * p.X))
	y := int(math.Floor(c.invScale * p.Y))
	z := int(math.Floor(c.invScale * p.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, p)
	}
	return c.Odd.Value(u, v, p)
}
