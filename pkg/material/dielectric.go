package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric is a clear material such as glass or water that reflects or
// refracts every ray and never absorbs
type Dielectric struct {
	noEmission
	RefractiveIndex float64 // Relative to the surrounding medium, 1.5 for glass
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// eta returns the index ratio across the surface for a ray arriving on the given side
func (d *Dielectric) eta(frontFace bool) float64 {
	if frontFace {
		// Entering: air to material
		return 1.0 / d.RefractiveIndex
	}
	// Leaving: material to air
	return d.RefractiveIndex
}

// Scatter picks reflection or refraction. Reflection is forced when Snell's
// law has no solution, and otherwise chosen with the Schlick probability.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	eta := d.eta(hit.FrontFace)
	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	switch {
	case eta*sinTheta > 1.0:
		// Total internal reflection
		direction = reflectVector(unitDirection, hit.Normal)
	case Reflectance(cosTheta, eta) > sampler.Get1D():
		direction = reflectVector(unitDirection, hit.Normal)
	default:
		direction = refractVector(unitDirection, hit.Normal, eta)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: core.NewVec3(1, 1, 1),
	}, true
}
