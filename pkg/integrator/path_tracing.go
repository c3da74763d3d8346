package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// minHitDistance keeps scattered rays from re-hitting the surface they left
const minHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a
// constant background
type PathTracingIntegrator struct {
	world      geometry.Hittable
	background core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(world geometry.Hittable, background core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		world:      world,
		background: background,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := pt.world.Hit(ray, core.NewInterval(minHitDistance, math.Inf(1)), sampler)
	if !isHit {
		return pt.background
	}

	colorEmitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, depth-1, sampler))
	return colorEmitted.Add(colorScattered)
}
