package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDiffuseLight(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := NewDiffuseLight(emission)

	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	if _, ok := light.Scatter(ray, hit, core.NewSeededSampler(1)); ok {
		t.Error("Lights should not scatter")
	}
	if got := light.Emitted(0.3, 0.7, hit.Point); !got.Equals(emission) {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}
}

func TestIsotropic_ScattersUniformly(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.9)
	iso := NewIsotropic(albedo)
	sampler := core.NewSeededSampler(21)

	ray := core.NewRayAtTime(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.6)
	// Normal is arbitrary for a medium hit
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: core.NewVec3(1, 0, 0), FrontFace: true}

	var mean core.Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		scatter, ok := iso.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Time != 0.6 {
			t.Fatalf("Expected time 0.6, got %f", scatter.Scattered.Time)
		}
		mean = mean.Add(scatter.Scattered.Direction)
	}

	if mean.Multiply(1.0/n).Length() > 0.05 {
		t.Errorf("Isotropic directions are biased: mean %v", mean.Multiply(1.0/n))
	}
	if got := iso.Emitted(0, 0, hit.Point); got != (core.Vec3{}) {
		t.Errorf("Isotropic should not emit, got %v", got)
	}
}
