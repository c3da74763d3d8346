package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const turbulenceDepth = 7

// NoiseTexture produces a marble-like gray pattern from Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture; sampler seeds its Perlin tables
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// Value returns a gray level in [0, 1] at point p
func (n *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	g := 0.5 * (1 + math.Sin(n.Scale*p.Z+10*n.noise.Turbulence(p, turbulenceDepth)))
	return core.NewVec3(g, g, g)
}
