package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundaryExitEpsilon separates the entry hit from the search for the exit hit
const boundaryExitEpsilon = 0.0001

// ConstantMedium is a homogeneous participating medium such as smoke or fog,
// filling the inside of a closed boundary object
type ConstantMedium struct {
	Boundary      Hittable
	negInvDensity float64
	PhaseFunction material.Material
}

// NewConstantMedium creates a medium with a textured isotropic phase function
func NewConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1.0 / density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
}

// NewConstantMediumColor creates a medium with a solid-color isotropic phase function
func NewConstantMediumColor(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// Hit samples a scattering event inside the boundary. The probability of a
// hit grows with density and with the distance the ray travels inside.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, core.NewInterval(entry.T+boundaryExitEpsilon, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:     t,
		Point: ray.At(t),
		// Normal and face are meaningless inside a volume
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
