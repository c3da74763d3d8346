package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// reflectVector mirrors v about the plane with unit normal n
func reflectVector(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refractVector bends the unit vector uv through a surface with unit normal n.
// eta is the ratio of the incident to the transmitted refractive index.
func refractVector(uv, n core.Vec3, eta float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	// Split the refracted ray into parts perpendicular and parallel to n
	perp := uv.Add(n.Multiply(cosTheta)).Multiply(eta)
	parallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - perp.LengthSquared())))
	return perp.Add(parallel)
}

// Reflectance is Schlick's approximation of the Fresnel reflection coefficient
func Reflectance(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
