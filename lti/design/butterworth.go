// Package design synthesizes transfer functions from filter prototypes.
package design

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lti/lti/bilinear"
	"github.com/cwbudde/algo-lti/lti/poly"
	"github.com/cwbudde/algo-lti/lti/tf"
)

// MaxOrder is the highest filter order that can still be discretized.
const MaxOrder = poly.MaxBinomialOrder

var (
	ErrInvalidOrder  = errors.New("design: order out of range")
	ErrInvalidCutoff = errors.New("design: cutoff must be finite and > 0")
)

// ButterworthPoles returns the n left-half-plane poles of an analog
// Butterworth lowpass with cutoff wc (rad/s). Pole k sits at angle
// pi/2 + (2k+1)*pi/(2n) on the circle of radius wc, so the set is closed
// under conjugation and, for odd n, contains the real pole -wc.
func ButterworthPoles(n int, wc float64) []complex128 {
	if n <= 0 {
		return nil
	}

	poles := make([]complex128, n)
	for k := range poles {
		theta := math.Pi/2 + float64(2*k+1)*math.Pi/float64(2*n)
		poles[k] = cmplx.Rect(wc, theta)
	}

	// The middle pole of an odd order is real up to rounding.
	if n%2 == 1 {
		poles[n/2] = complex(-wc, 0)
	}

	return poles
}

// ButterworthLowpass returns the analog Butterworth lowpass of order n
// with -3 dB cutoff wc and unity DC gain.
func ButterworthLowpass(n int, wc float64) (*tf.Continuous, error) {
	if err := validate(n, wc); err != nil {
		return nil, err
	}

	c := tf.ContinuousFromPolesZeroes(ButterworthPoles(n, wc), nil)
	if err := c.NormalizeAt(0); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}

	return c, nil
}

// ButterworthLowpassDiscrete discretizes [ButterworthLowpass] with the
// bilinear transform pre-warped at wc, so the cutoff stays at wc.
func ButterworthLowpassDiscrete(n int, wc, sampleTime float64) (*tf.Discrete, error) {
	c, err := ButterworthLowpass(n, wc)
	if err != nil {
		return nil, err
	}

	d, err := tf.DiscreteFromContinuous(c, sampleTime, bilinear.WithPrewarp(wc))
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}

	return d, nil
}

func validate(n int, wc float64) error {
	if n < 1 || n > MaxOrder {
		return fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidOrder, n, MaxOrder)
	}
	if !(wc > 0) || math.IsInf(wc, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCutoff, wc)
	}
	return nil
}
