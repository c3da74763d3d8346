package core

import "math"

// Interval is a closed range of real numbers
type Interval struct {
	Min float64
	Max float64
}

var (
	// EmptyInterval is a zero-width interval at the origin
	EmptyInterval = Interval{Min: 0, Max: 0}
	// UniverseInterval spans every real number
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// CombineIntervals returns the tightest interval enclosing both a and b
func CombineIntervals(a, b Interval) Interval {
	return Interval{
		Min: math.Min(a.Min, b.Min),
		Max: math.Max(a.Max, b.Max),
	}
}

// Size returns the width of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in [Min, Max]
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies in (Min, Max)
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Expand returns the interval padded by delta on both sides
func (i Interval) Expand(delta float64) Interval {
	return Interval{Min: i.Min - delta, Max: i.Max + delta}
}

// Translate returns the interval shifted by offset
func (i Interval) Translate(offset float64) Interval {
	return Interval{Min: i.Min + offset, Max: i.Max + offset}
}
