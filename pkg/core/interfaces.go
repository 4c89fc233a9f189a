package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Sampler provides random numbers for rendering algorithms
// Can be swapped out for deterministic testing
type Sampler interface {
	Uniform() float32   // value in [0, 1]
	Bilateral() float32 // value in [-1, 1]
}
