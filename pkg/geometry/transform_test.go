package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTranslate_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	moved := NewTranslate(sphere, core.NewVec3(10, 0, 0))

	ray := core.NewRay(core.NewVec3(10, 0, 5), core.NewVec3(0, 0, -1))
	hit, isHit := moved.Hit(ray, defaultRange, nil)
	if !isHit {
		t.Fatal("Expected hit on translated sphere")
	}
	if !vecNear(hit.Point, core.NewVec3(10, 0, 1), 1e-9) {
		t.Errorf("Expected world-space hit point (10,0,1), got %v", hit.Point)
	}

	// The original position is now empty
	if _, isHit := moved.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), defaultRange, nil); isHit {
		t.Error("Expected miss at the untranslated position")
	}

	want := sphere.BoundingBox().Translate(core.NewVec3(10, 0, 0))
	if moved.BoundingBox() != want {
		t.Errorf("Expected box %v, got %v", want, moved.BoundingBox())
	}
}

// Translating by an offset and then by its negation leaves hits unchanged
func TestTranslate_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		offset core.Vec3
	}{
		{"zero", core.NewVec3(0, 0, 0)},
		{"mixed", core.NewVec3(3.5, -7, 2.25)},
		{"along x", core.NewVec3(-12, 0, 0)},
		{"far away", core.NewVec3(250, 100, -64.125)},
	}

	box := NewBox(core.NewVec3(-1, -2, -1), core.NewVec3(2, 1, 3), DummyMaterial{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(12)
			roundTrip := NewTranslate(NewTranslate(box, tt.offset), tt.offset.Negate())

			for i := 0; i < 300; i++ {
				origin := core.RandomVec3Range(sampler, -8, 8)
				ray := core.NewRay(origin, core.RandomVec3Range(sampler, -1, 1).Subtract(origin))

				a, okA := box.Hit(ray, defaultRange, nil)
				b, okB := roundTrip.Hit(ray, defaultRange, nil)
				if okA != okB {
					t.Fatalf("ray %d: direct hit=%v, round trip hit=%v", i, okA, okB)
				}
				if okA && (math.Abs(a.T-b.T) > 1e-6 || !vecNear(a.Point, b.Point, 1e-6)) {
					t.Fatalf("ray %d: direct %+v, round trip %+v", i, a, b)
				}
			}
		})
	}
}

func TestRotateY_ZeroIsIdentity(t *testing.T) {
	sampler := core.NewSeededSampler(13)
	box := NewBox(core.NewVec3(-1, -2, -1), core.NewVec3(2, 1, 3), DummyMaterial{})
	rotated := NewRotateY(box, 0)

	if rotated.BoundingBox() != box.BoundingBox() {
		t.Errorf("Expected unchanged box %v, got %v", box.BoundingBox(), rotated.BoundingBox())
	}

	for i := 0; i < 300; i++ {
		origin := core.RandomVec3Range(sampler, -8, 8)
		ray := core.NewRay(origin, core.RandomVec3Range(sampler, -1, 1).Subtract(origin))

		a, okA := box.Hit(ray, defaultRange, nil)
		b, okB := rotated.Hit(ray, defaultRange, nil)
		if okA != okB {
			t.Fatalf("ray %d: direct hit=%v, rotated hit=%v", i, okA, okB)
		}
		if okA && (math.Abs(a.T-b.T) > 1e-9 || !vecNear(a.Normal, b.Normal, 1e-9)) {
			t.Fatalf("ray %d: direct %+v, rotated %+v", i, a, b)
		}
	}
}

func TestRotateY_QuarterTurn(t *testing.T) {
	// A slab along +X lies along -Z after rotating 90 degrees
	slab := NewBox(core.NewVec3(0, -0.5, -0.5), core.NewVec3(4, 0.5, 0.5), DummyMaterial{})
	rotated := NewRotateY(slab, 90)

	// Face boxes are padded, so allow a little slack
	box := rotated.BoundingBox()
	if math.Abs(box.Z.Min+4) > 1e-3 || math.Abs(box.Z.Max) > 1e-3 {
		t.Errorf("Expected Z extent [-4, 0], got %v", box.Z)
	}
	if math.Abs(box.X.Min+0.5) > 1e-3 || math.Abs(box.X.Max-0.5) > 1e-3 {
		t.Errorf("Expected X extent [-0.5, 0.5], got %v", box.X)
	}

	// Shoot down onto where the slab now lies
	hit, isHit := rotated.Hit(core.NewRay(core.NewVec3(0, 5, -3), core.NewVec3(0, -1, 0)), defaultRange, nil)
	if !isHit {
		t.Fatal("Expected hit on rotated slab")
	}
	if !vecNear(hit.Point, core.NewVec3(0, 0.5, -3), 1e-9) {
		t.Errorf("Expected hit point (0,0.5,-3), got %v", hit.Point)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected normal +Y, got %v", hit.Normal)
	}

	// The unrotated location is empty
	if _, isHit := rotated.Hit(core.NewRay(core.NewVec3(3, 5, 0), core.NewVec3(0, -1, 0)), defaultRange, nil); isHit {
		t.Error("Expected miss at the unrotated location")
	}
}

func TestRotateY_NormalsStayUnitAndOpposing(t *testing.T) {
	sampler := core.NewSeededSampler(14)
	sphere := NewSphere(core.NewVec3(2, 0, 0), 1, DummyMaterial{})
	rotated := NewRotateY(sphere, 37)

	for i := 0; i < 300; i++ {
		origin := core.RandomVec3Range(sampler, -6, 6)
		ray := core.NewRay(origin, core.RandomVec3Range(sampler, -3, 3).Subtract(origin))
		hit, isHit := rotated.Hit(ray, defaultRange, nil)
		if !isHit {
			continue
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v is not unit length", hit.Normal)
		}
		if hit.Normal.Dot(ray.Direction) > 1e-12 {
			t.Fatalf("Normal %v does not oppose ray %v", hit.Normal, ray.Direction)
		}
	}
}
