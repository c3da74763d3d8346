package core

import "math"

// minAxisThickness is the smallest extent an AABB axis is allowed to have.
// Planar shapes such as quads would otherwise produce zero-width slabs.
const minAxisThickness = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// NewAABB creates an AABB from per-axis intervals, padding degenerate axes
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}.padToMinimums()
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	)
}

// EmptyAABB returns a padded zero-volume box at the origin
func EmptyAABB() AABB {
	return NewAABB(EmptyInterval, EmptyInterval, EmptyInterval)
}

// CombineAABB returns the smallest AABB containing both a and b
func CombineAABB(a, b AABB) AABB {
	return AABB{
		X: CombineIntervals(a.X, b.X),
		Y: CombineIntervals(a.Y, b.Y),
		Z: CombineIntervals(a.Z, b.Z),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return CombineAABB(aabb, other)
}

// AxisInterval returns the interval for axis n (0=X, 1=Y, 2=Z)
func (aabb AABB) AxisInterval(n int) Interval {
	switch n {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects the box within rayT using the slab method.
// A zero direction component divides to ±Inf, which the comparisons below tolerate.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.AxisInterval(axis)
		origin := ray.Origin.Axis(axis)
		adinv := 1.0 / ray.Direction.Axis(axis)

		t0 := (ax.Min - origin) * adinv
		t1 := (ax.Max - origin) * adinv

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties are resolved in favor of the later axis.
func (aabb AABB) LongestAxis() int {
	if aabb.X.Size() > aabb.Y.Size() {
		if aabb.X.Size() > aabb.Z.Size() {
			return 0
		}
		return 2
	}
	if aabb.Y.Size() > aabb.Z.Size() {
		return 1
	}
	return 2
}

// Translate returns the box shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Translate(offset.X),
		Y: aabb.Y.Translate(offset.Y),
		Z: aabb.Z.Translate(offset.Z),
	}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.X.Min <= other.X.Min && other.X.Max <= aabb.X.Max &&
		aabb.Y.Min <= other.Y.Min && other.Y.Max <= aabb.Y.Max &&
		aabb.Z.Min <= other.Z.Min && other.Z.Max <= aabb.Z.Max
}

// Corner returns one of the eight corners; bit 0 of i selects X max, bit 1 Y max, bit 2 Z max
func (aabb AABB) Corner(i int) Vec3 {
	c := Vec3{X: aabb.X.Min, Y: aabb.Y.Min, Z: aabb.Z.Min}
	if i&1 != 0 {
		c.X = aabb.X.Max
	}
	if i&2 != 0 {
		c.Y = aabb.Y.Max
	}
	if i&4 != 0 {
		c.Z = aabb.Z.Max
	}
	return c
}

func (aabb AABB) padToMinimums() AABB {
	if aabb.X.Size() < minAxisThickness {
		aabb.X = aabb.X.Expand(minAxisThickness)
	}
	if aabb.Y.Size() < minAxisThickness {
		aabb.Y = aabb.Y.Expand(minAxisThickness)
	}
	if aabb.Z.Size() < minAxisThickness {
		aabb.Z = aabb.Z.Expand(minAxisThickness)
	}
	return aabb
}
