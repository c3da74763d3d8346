package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin generates smooth gradient noise from randomized lattice vectors.
// The tables are fixed at construction, so a Perlin value may be copied and
// shared between goroutines.
type Perlin struct {
	randVec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.randVec {
		p.randVec[i] = core.RandomUnitVector(sampler)
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

// Noise returns gradient noise at p, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := p.permX[(i+di)&255] ^ p.permY[(j+dj)&255] ^ p.permZ[(k+dk)&255]
				c[di][dj][dk] = p.randVec[idx]
			}
		}
	}

	return perlinInterpolate(&c, u, v, w)
}

// Turbulence sums depth octaves of noise, halving the weight and doubling
// the frequency each octave, and returns the magnitude
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

func perlinInterpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// generatePerm fills perm with a random permutation of 0..n-1
func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := int(math.Floor(sampler.GetRange(0, float64(i+1))))
		if j > i {
			j = i
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
}
