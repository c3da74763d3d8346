package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate displaces a shared object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)

	hit, ok := tr.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the translated box of the wrapped object
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}
