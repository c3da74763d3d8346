package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere whose center may move linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time 0 plus displacement per unit time
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere centered at center1 at time 0 and center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		Center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     core.CombineAABB(box1, box2),
	}
}

// Hit tests if a ray intersects with the sphere. Roots must lie strictly inside rayT.
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	center := s.Center.At(ray.Time)
	oc := center.Subtract(ray.Origin)

	// Quadratic coefficients with b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box swept over the shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting from -X; v runs from +Y (0) to -Y (1).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(core.NewInterval(-1, 1).Clamp(p.Y))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}
