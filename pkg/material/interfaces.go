package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for objects that can scatter or emit light
type Material interface {
	// Scatter generates a scattered ray; false means the ray was absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the light emitted at surface coordinates (u, v) and point p
	Emitted(u, v float64, p core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, facing against the incoming ray
	Material  Material  // Material of the hit object
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	U, V      float64   // Surface coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// noEmission is embedded by materials that do not emit light
type noEmission struct{}

// Emitted returns black
func (noEmission) Emitted(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}
