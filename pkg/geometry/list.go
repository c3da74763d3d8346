package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an unordered collection of objects tested by linear scan
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list containing objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object and grows the bounding box to include it
func (l *HittableList) Add(object Hittable) {
	if len(l.Objects) == 0 {
		l.bbox = object.BoundingBox()
	} else {
		l.bbox = core.CombineAABB(l.bbox, object.BoundingBox())
	}
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all object boxes
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.EmptyAABB()
	}
	return l.bbox
}
