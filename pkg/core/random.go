package core

import "math"

// DefaultSeed is the base seed used when none is configured
const DefaultSeed uint32 = 23528812

// RandomSeries is a xorshift32 generator. It is not safe for concurrent use;
// each worker owns its own series.
type RandomSeries struct {
	state uint32
}

// NewRandomSeries creates a generator from a seed. A zero seed is replaced by
// DefaultSeed because zero is a fixed point of xorshift.
func NewRandomSeries(seed uint32) *RandomSeries {
	r := &RandomSeries{}
	r.Reseed(seed)
	return r
}

// Reseed restarts the series from a new seed
func (r *RandomSeries) Reseed(seed uint32) {
	if seed == 0 {
		seed = DefaultSeed
	}
	r.state = seed
}

// State returns the current generator state
func (r *RandomSeries) State() uint32 {
	return r.state
}

// Next advances the generator and returns the raw 32-bit state
func (r *RandomSeries) Next() uint32 {
	s := r.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	r.state = s
	return s
}

// Uniform returns a float32 in [0, 1]
func (r *RandomSeries) Uniform() float32 {
	return float32(r.Next()>>1) / float32(math.MaxUint32>>1)
}

// Bilateral returns a float32 in [-1, 1]
func (r *RandomSeries) Bilateral() float32 {
	return -1 + 2*r.Uniform()
}

// MixSeed derives an independent seed from a base seed and a stream index
// (worker or tile) using the splitmix32 finalizer.
func MixSeed(base uint32, stream int) uint32 {
	z := base + uint32(stream+1)*0x9e3779b9
	z = (z ^ (z >> 16)) * 0x85ebca6b
	z = (z ^ (z >> 13)) * 0xc2b2ae35
	z ^= z >> 16
	if z == 0 {
		return DefaultSeed
	}
	return z
}
