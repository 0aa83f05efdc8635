// Package sim computes time-domain responses of discrete transfer
// functions by stepping their difference equation.
//
// A [Simulator] keeps input and output history for one [tf.Discrete]
// system. The stored coefficients are used as given, b from the numerator
// and a from the denominator, with index k weighting the sample k steps
// back:
//
//	a0*y[n] = sum(b[k]*x[n-k], k=0..len(b)-1) - sum(a[k]*y[n-k], k=1..len(a)-1)
//
// A system with an empty denominator or a numerically zero a0 simulates to
// an empty result. Systems from the bilinear transform have equal-length
// polynomials, where this is the usual causal realization in z^-1.
package sim
