package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a light with uniform emission
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// Scatter implements the Material interface for lights.
// Lights don't scatter - they absorb all incoming rays.
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted light for this material
func (d *DiffuseLight) Emitted(u, v float64, p core.Vec3) core.Vec3 {
	return d.Emit.Value(u, v, p)
}
