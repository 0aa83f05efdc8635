// Package bilinear maps continuous-time (s-domain) transfer-function
// coefficients to discrete-time (z-domain) coefficients with Tustin's method,
//
//	s = k * (z - 1) / (z + 1),   k = 2/T
//
// The substitution is carried out by direct polynomial expansion: every
// s^ord term becomes k^ord * (z-1)^ord * (z+1)^(N-ord) over the common
// denominator (z+1)^N, N being the larger of the two source degrees.
package bilinear

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lti/lti/poly"
)

// Errors returned by [Transform].
var (
	ErrEmptyPolynomial   = errors.New("bilinear: empty polynomial")
	ErrInvalidSampleTime = errors.New("bilinear: sample time must be finite and > 0")
	ErrInvalidPrewarp    = errors.New("bilinear: prewarp frequency must be in (0, pi/T)")
	ErrDegenerateResult  = errors.New("bilinear: discrete denominator has zero leading coefficient")
)

// Transform converts the continuous numerator and denominator (highest power
// of s first) into discrete coefficients (highest power of z first) at the
// given sample time.
//
// Both results have degree max(len(num), len(den))-1 and are divided by the
// leading denominator coefficient, so denZ[0] == 1. No pole-zero
// cancellation or order reduction is attempted.
func Transform(num, den []float64, sampleTime float64, opts ...Option) (numZ, denZ []float64, err error) {
	if len(num) == 0 || len(den) == 0 {
		return nil, nil, ErrEmptyPolynomial
	}

	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSampleTime, sampleTime)
	}

	cfg := applyOptions(opts...)

	k, err := warpFactor(sampleTime, cfg.prewarp)
	if err != nil {
		return nil, nil, err
	}

	maxOrd := max(len(num), len(den)) - 1

	numZ, err = expand(num, maxOrd, k)
	if err != nil {
		return nil, nil, err
	}

	denZ, err = expand(den, maxOrd, k)
	if err != nil {
		return nil, nil, err
	}

	norm := denZ[0]
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, nil, ErrDegenerateResult
	}

	for i := range numZ {
		numZ[i] /= norm
	}

	for i := range denZ {
		denZ[i] /= norm
	}

	return numZ, denZ, nil
}

// warpFactor returns the s-to-z scale k. Without pre-warping k = 2/T; with
// a prewarp frequency w, k = w/tan(w*T/2) so that the discrete response at
// w matches the continuous one exactly.
func warpFactor(sampleTime, prewarp float64) (float64, error) {
	if prewarp == 0 {
		return 2 / sampleTime, nil
	}

	if !(prewarp > 0) || prewarp*sampleTime >= math.Pi || math.IsInf(prewarp, 0) {
		return 0, fmt.Errorf("%w: w=%v, T=%v", ErrInvalidPrewarp, prewarp, sampleTime)
	}

	return prewarp / math.Tan(prewarp*sampleTime/2), nil
}

// expand accumulates the z-domain image of one s-domain polynomial over the
// common denominator (z+1)^maxOrd.
func expand(coeffs []float64, maxOrd int, k float64) ([]float64, error) {
	deg := len(coeffs) - 1
	out := make([]float64, maxOrd+1)

	for i, c := range coeffs {
		ord := deg - i

		minus, err := poly.BinomialExpansion(ord, true)
		if err != nil {
			return nil, fmt.Errorf("bilinear: %w", err)
		}

		plus, err := poly.BinomialExpansion(maxOrd-ord, false)
		if err != nil {
			return nil, fmt.Errorf("bilinear: %w", err)
		}

		contrib := poly.Scale(poly.Convolve(minus, plus), c*math.Pow(k, float64(ord)))
		out = poly.Add(out, contrib)
	}

	return out, nil
}
