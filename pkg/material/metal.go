package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal reflects like a mirror, optionally blurred by Fuzzness
type Metal struct {
	noEmission
	Albedo   core.Vec3 // Tint applied to every reflection
	Fuzzness float64   // Radius of the blur sphere, in [0, 1]
}

// NewMetal creates a metal; fuzzness is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: core.NewInterval(0, 1).Clamp(fuzzness)}
}

// Scatter reflects about the normal. A fuzzed reflection that points into
// the surface is absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := reflectVector(rayIn.Direction, hit.Normal).Normalize()
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzzness))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}
	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo,
	}, true
}
