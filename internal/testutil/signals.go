// Package testutil holds deterministic signals and tolerance assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine samples amplitude*sin(omega*t) at t = i*sampleTime.
func DeterministicSine(omega, sampleTime, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(omega*sampleTime*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with a
// fixed seed, used for random coefficient vectors.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
