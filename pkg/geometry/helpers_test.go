package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DummyMaterial for testing
type DummyMaterial struct{}

func (d DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func (d DummyMaterial) Emitted(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
