package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at surface coordinates (u, v) and 3D point p.
	// UV is used for image textures, point for procedural textures.
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Albedo core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(albedo core.Vec3) *SolidColor {
	return &SolidColor{Albedo: albedo}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Albedo
}
