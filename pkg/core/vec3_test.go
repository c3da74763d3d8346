package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel vectors", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 12).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-3, 0).NearZero() {
		t.Error("Expected vector with one significant component not to be near zero")
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, want := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != want {
			t.Errorf("Axis(%d) = %f, want %f", axis, got, want)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 1, 1), NewVec3(0, 2, 0), 0.25)
	if got := ray.At(1.5); got != NewVec3(1, 4, 1) {
		t.Errorf("Expected (1,4,1), got %v", got)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
}
