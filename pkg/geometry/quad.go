package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // n / (n · n), used for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Both diagonals are needed so skewed quads are fully enclosed
	diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     core.CombineAABB(diagonal1, diagonal2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	denominator := q.Normal.Dot(ray.Direction)

	// Parallel rays miss; a degenerate quad has a zero normal and also lands here
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: q.Material,
		U:        alpha,
		V:        beta,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the padded bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
