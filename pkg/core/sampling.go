package core

import (
	"math"
	"math/rand"
)

// Sampler provides uniform random deviates for rendering algorithms.
// Each render worker owns its own Sampler; implementations need not be
// safe for concurrent use.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	GetRange(lo, hi float64) float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own stream seeded from seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// GetRange returns a random float64 in [lo, hi)
func (r *RandomSampler) GetRange(lo, hi float64) float64 {
	return lo + (hi-lo)*r.random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3Range returns a vector with each component uniform in [lo, hi)
func RandomVec3Range(sampler Sampler, lo, hi float64) Vec3 {
	return NewVec3(sampler.GetRange(lo, hi), sampler.GetRange(lo, hi), sampler.GetRange(lo, hi))
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomVec3Range(sampler, -1, 1)
		lensq := p.LengthSquared()
		// Reject tiny vectors whose normalization would blow up
		if 1e-160 < lensq && lensq <= 1 {
			return p.Multiply(1 / math.Sqrt(lensq))
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk in the XY plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(sampler.GetRange(-1, 1), sampler.GetRange(-1, 1), 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
