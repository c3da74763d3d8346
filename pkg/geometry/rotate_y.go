package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// RotateY rotates a shared object about the Y axis
type RotateY struct {
	Object   Hittable
	toWorld  mgl64.Mat3
	toObject mgl64.Mat3
	bbox     core.AABB
}

// NewRotateY wraps object so it appears rotated by angle degrees about +Y
func NewRotateY(object Hittable, angle float64) *RotateY {
	toWorld := mgl64.Rotate3DY(core.DegreesToRadians(angle))
	r := &RotateY{
		Object:   object,
		toWorld:  toWorld,
		toObject: toWorld.Transpose(),
	}

	// Bound every rotated corner of the object's box
	box := object.BoundingBox()
	min := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	max := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 8; i++ {
		c := transform(toWorld, box.Corner(i))
		min = core.NewVec3(math.Min(min.X, c.X), math.Min(min.Y, c.Y), math.Min(min.Z, c.Z))
		max = core.NewVec3(math.Max(max.X, c.X), math.Max(max.Y, c.Y), math.Max(max.Z, c.Z))
	}
	r.bbox = core.NewAABBFromPoints(min, max)

	return r
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(
		transform(r.toObject, ray.Origin),
		transform(r.toObject, ray.Direction),
		ray.Time,
	)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = transform(r.toWorld, hit.Point)
	hit.Normal = transform(r.toWorld, hit.Normal)
	return hit, true
}

// BoundingBox returns the world-space box of the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

func transform(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}
