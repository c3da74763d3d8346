package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), true},
		{"miss to the side", NewRay(NewVec3(3, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), false},
		{"interval ends before box", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, 3), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), NewInterval(0, math.Inf(1)), true},
		{"zero direction component inside slab", NewRay(NewVec3(0.5, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), true},
		{"zero direction component outside slab", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}

// Reversing the direction and mirroring the interval must not change the outcome.
func TestAABB_HitDirectionSymmetry(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sampler := NewRandomSampler(random)

	for i := 0; i < 1000; i++ {
		a := RandomVec3Range(sampler, -5, 5)
		b := RandomVec3Range(sampler, -5, 5)
		box := NewAABBFromPoints(a, b)

		origin := RandomVec3Range(sampler, -10, 10)
		dir := RandomVec3Range(sampler, -1, 1)
		lo := sampler.GetRange(-20, 0)
		hi := sampler.GetRange(0, 20)

		forward := box.Hit(NewRay(origin, dir), NewInterval(lo, hi))
		backward := box.Hit(NewRay(origin, dir.Negate()), NewInterval(-hi, -lo))
		if forward != backward {
			t.Fatalf("asymmetric slab test for box %v origin %v dir %v [%f,%f]: %v vs %v",
				box, origin, dir, lo, hi, forward, backward)
		}
	}
}

func TestNewAABB_Padding(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 2), NewVec3(1, 1, 2))

	want := NewInterval(2-minAxisThickness, 2+minAxisThickness)
	if diff := cmp.Diff(want, box.Z); diff != "" {
		t.Errorf("flat axis not padded (-want +got):\n%s", diff)
	}
	if box.X != NewInterval(0, 1) {
		t.Errorf("thick axis should be untouched, got %v", box.X)
	}
}

func TestCombineAABB_Minimal(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABBFromPoints(NewVec3(2, -1, 0.5), NewVec3(3, 0.5, 4))
	c := CombineAABB(a, b)

	if !c.Contains(a) || !c.Contains(b) {
		t.Fatalf("combined box %v does not contain its inputs", c)
	}

	want := AABB{X: NewInterval(0, 3), Y: NewInterval(-1, 1), Z: NewInterval(0, 4)}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("combined box not minimal (-want +got):\n%s", diff)
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected int
	}{
		{"x longest", AABB{X: NewInterval(0, 5), Y: NewInterval(0, 1), Z: NewInterval(0, 1)}, 0},
		{"y longest", AABB{X: NewInterval(0, 1), Y: NewInterval(0, 5), Z: NewInterval(0, 1)}, 1},
		{"z longest", AABB{X: NewInterval(0, 1), Y: NewInterval(0, 1), Z: NewInterval(0, 5)}, 2},
		{"x ties z", AABB{X: NewInterval(0, 5), Y: NewInterval(0, 1), Z: NewInterval(0, 5)}, 2},
		{"x ties y", AABB{X: NewInterval(0, 5), Y: NewInterval(0, 5), Z: NewInterval(0, 1)}, 1},
		{"cube", AABB{X: NewInterval(0, 1), Y: NewInterval(0, 1), Z: NewInterval(0, 1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAABB_CornersAndTranslate(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 2, 3))

	if got := box.Corner(0); got != NewVec3(0, 0, 0) {
		t.Errorf("Corner(0) = %v", got)
	}
	if got := box.Corner(7); got != NewVec3(1, 2, 3) {
		t.Errorf("Corner(7) = %v", got)
	}

	moved := box.Translate(NewVec3(1, 1, 1))
	if got := moved.Corner(0); got != NewVec3(1, 1, 1) {
		t.Errorf("translated Corner(0) = %v", got)
	}
	if got := moved.Corner(7); got != NewVec3(2, 3, 4) {
		t.Errorf("translated Corner(7) = %v", got)
	}
}
