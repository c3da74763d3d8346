package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Implementations are immutable after construction and safe for concurrent use.
type Hittable interface {
	// Hit returns the closest intersection with t inside rayT. The sampler
	// supplies deviates to stochastic objects such as participating media.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
