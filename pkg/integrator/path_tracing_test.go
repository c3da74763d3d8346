package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
	emitted   core.Vec3
}

func (m MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

func (m MockMaterial) Emitted(u, v float64, p core.Vec3) core.Vec3 {
	return m.emitted
}

// absorb never scatters
func absorb(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

var skyBlue = core.NewVec3(0.5, 0.7, 1.0)

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	integrator := NewPathTracingIntegrator(sphere, skyBlue)
	sampler := core.NewSeededSampler(42)

	// Ray pointing at the sphere
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if color := integrator.RayColor(ray, 0, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", color)
	}
	if color := integrator.RayColor(ray, -3, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black color for negative depth, got %v", color)
	}

	// Depth 1 hits the sphere and runs out of bounces before reaching the sky
	if color := integrator.RayColor(ray, 1, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 1 on a non-emissive hit, got %v", color)
	}

	// Pointing away from the sphere sees the background even at depth 1
	away := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if color := integrator.RayColor(away, 1, sampler); color != skyBlue {
		t.Errorf("Expected background %v, got %v", skyBlue, color)
	}
}

// An absorbing scene is black where rays hit and background where they escape
func TestPathTracingAbsorbingScene(t *testing.T) {
	mat := MockMaterial{scatterFn: absorb}
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, mat),
		geometry.NewQuad(core.NewVec3(-1, -1, 3), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), mat),
	)
	integrator := NewPathTracingIntegrator(world, skyBlue)
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"hits sphere", core.NewVec3(0, 0, -1), core.Vec3{}},
		{"hits quad", core.NewVec3(0, 0, 1), core.Vec3{}},
		{"escapes up", core.NewVec3(0, 1, 0), skyBlue},
		{"escapes sideways", core.NewVec3(1, 0, 0), skyBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := integrator.RayColor(core.NewRay(core.Vec3{}, tt.dir), 50, sampler)
			if color != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracingEmissionAndAttenuation(t *testing.T) {
	// A mirror-like surface that sends every ray straight up into the sky
	mirror := MockMaterial{
		emitted: core.NewVec3(0.1, 0.1, 0.1),
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{
				Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
				Attenuation: core.NewVec3(0.5, 0.25, 1.0),
			}, true
		},
	}
	floor := geometry.NewQuad(core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0), mirror)
	integrator := NewPathTracingIntegrator(floor, core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	color := integrator.RayColor(ray, 2, core.NewSeededSampler(7))

	// emitted + attenuation * background
	expected := core.NewVec3(0.6, 0.35, 1.1)
	if !color.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPathTracingLightSource(t *testing.T) {
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	quad := geometry.NewQuad(core.NewVec3(-1, -1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light)
	integrator := NewPathTracingIntegrator(quad, core.Vec3{})

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 5, core.NewSeededSampler(3))
	if !color.Equals(core.NewVec3(4, 4, 4)) {
		t.Errorf("Looking straight at a light should return its emission, got %v", color)
	}
}

// A closed white furnace: an albedo-a diffuse sphere lit by a unit background
// converges toward a geometric series bounded by 1
func TestPathTracingEnergyBounded(t *testing.T) {
	sphere := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	integrator := NewPathTracingIntegrator(sphere, core.NewVec3(1, 1, 1))
	sampler := core.NewSeededSampler(17)

	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 10, sampler)
		if math.IsNaN(color.X) || color.X < 0 || color.X > 1 {
			t.Fatalf("Radiance %v out of range", color)
		}
		sum += color.X
	}

	// A convex sphere sends every scattered ray to the sky after one bounce
	if mean := sum / n; math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("Expected exactly one bounce of albedo 0.5, got mean %f", mean)
	}
}
