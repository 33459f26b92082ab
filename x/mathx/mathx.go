package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Oscillator produces a bounded triangle wave, one step per call. It stands
// in for a real sensor: the value walks up to hi, turns around, walks down
// to lo, and repeats.
type Oscillator[T constraints.Integer] struct {
	v, lo, hi, step T
	rising          bool
}

// NewOscillator starts a wave at start, rising first.
func NewOscillator[T constraints.Integer](start, lo, hi, step T) *Oscillator[T] {
	return &Oscillator[T]{v: Clamp(start, lo, hi), lo: lo, hi: hi, step: step, rising: true}
}

// Next advances the wave and returns the new value.
func (o *Oscillator[T]) Next() T {
	if o.rising {
		o.v += o.step
	} else {
		o.v -= o.step
	}
	o.v = Clamp(o.v, o.lo, o.hi)
	if o.v >= o.hi {
		o.rising = false
	}
	if o.v <= o.lo {
		o.rising = true
	}
	return o.v
}
