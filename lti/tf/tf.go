// Package tf models single-input single-output LTI systems as rational
// transfer functions.
//
// A [Continuous] function lives in the Laplace (s) domain, a [Discrete]
// function in the z domain with a fixed sample time. Both keep their
// coefficients highest power first and cache the poles and zeroes derived
// at construction. Analysis code in lti/freq and lti/sim works on the
// [TransferFunction] interface they share.
package tf

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lti/internal/polyroot"
	"github.com/cwbudde/algo-lti/lti/poly"
)

// Errors returned by constructors and [TransferFunction.NormalizeAt].
var (
	// ErrRootsUnavailable reports that the root solver did not converge.
	// Poles or zeroes could not be derived; this is distinct from a
	// polynomial that simply has no roots.
	ErrRootsUnavailable = polyroot.ErrNoConvergence

	ErrInvalidSampleTime = errors.New("tf: sample time must be finite and > 0")
	ErrDegenerateGain    = errors.New("tf: response magnitude is zero or not finite")
)

// Kind distinguishes continuous from discrete transfer functions.
type Kind int

const (
	KindContinuous Kind = iota
	KindDiscrete
)

func (k Kind) String() string {
	if k == KindDiscrete {
		return "discrete"
	}
	return "continuous"
}

// Domain tags a transfer function with its time domain. SampleTime is only
// meaningful for discrete functions.
type Domain struct {
	Kind       Kind
	SampleTime float64
}

// String renders the domain as "continuous" or "discrete(T=...)".
func (d Domain) String() string {
	if d.Kind == KindDiscrete {
		return fmt.Sprintf("discrete(T=%g)", d.SampleTime)
	}

	return "continuous"
}

// TransferFunction is the behaviour shared by [Continuous] and [Discrete].
type TransferFunction interface {
	Domain() Domain
	Numerator() []float64
	Denominator() []float64
	Poles() []complex128
	Zeroes() []complex128

	// Evaluate returns H(x) at an arbitrary point of the complex plane.
	Evaluate(x complex128) complex128

	// FrequencyResponse returns H at each angular frequency (rad/s): on
	// the imaginary axis for continuous functions and on the unit circle
	// for discrete ones.
	FrequencyResponse(omega []float64) []complex128

	// Order returns max(0, len(denominator)-1).
	Order() int

	// NormalizeAt scales the numerator so that |H| = 1 at omega.
	NormalizeAt(omega float64) error

	// DCGain returns the real part of the zero-frequency response.
	DCGain() float64

	// Stable reports whether every pole lies in the stability region.
	Stable() bool
}

// rational holds the state shared by both domains.
type rational struct {
	num    []float64
	den    []float64
	poles  []complex128
	zeroes []complex128
}

func newRational(num, den []float64) (rational, error) {
	poles, err := deriveRoots(den)
	if err != nil {
		return rational{}, fmt.Errorf("tf: poles: %w", err)
	}

	zeroes, err := deriveRoots(num)
	if err != nil {
		return rational{}, fmt.Errorf("tf: zeroes: %w", err)
	}

	return rational{
		num:    append([]float64(nil), num...),
		den:    append([]float64(nil), den...),
		poles:  poles,
		zeroes: zeroes,
	}, nil
}

// deriveRoots finds the roots of p after trimming leading zeros. A zero or
// constant polynomial has no roots.
func deriveRoots(p []float64) ([]complex128, error) {
	trimmed := poly.Trim(p)
	if len(trimmed) <= 1 {
		return nil, nil
	}

	roots, err := polyroot.Roots(trimmed)
	if errors.Is(err, polyroot.ErrDegeneratePolynomial) {
		// Non-finite coefficients: there is nothing meaningful to report
		// as roots, and evaluation already yields NaN.
		return nil, nil
	}

	return roots, err
}

// Numerator returns a copy of the numerator coefficients.
func (r *rational) Numerator() []float64 { return append([]float64(nil), r.num...) }

// Denominator returns a copy of the denominator coefficients.
func (r *rational) Denominator() []float64 { return append([]float64(nil), r.den...) }

// Poles returns a copy of the cached denominator roots.
func (r *rational) Poles() []complex128 { return append([]complex128(nil), r.poles...) }

// Zeroes returns a copy of the cached numerator roots.
func (r *rational) Zeroes() []complex128 { return append([]complex128(nil), r.zeroes...) }

// Order returns max(0, len(denominator)-1).
func (r *rational) Order() int {
	return max(0, len(r.den)-1)
}

// Evaluate computes num(x)/den(x) with Horner's method. A denominator that
// vanishes at x gives an IEEE infinity (or NaN when the numerator vanishes
// too) rather than an error.
func (r *rational) Evaluate(x complex128) complex128 {
	n := poly.Eval(r.num, x)
	d := poly.Eval(r.den, x)
	if d == 0 {
		if n == 0 {
			return cmplx.NaN()
		}
		return cmplx.Inf()
	}

	return n / d
}

// normalizeAt rescales the numerator by 1/|h|. Zero locations are
// unaffected by a uniform scale, so the cached zeroes stay valid.
func (r *rational) normalizeAt(h complex128) error {
	mag := cmplx.Abs(h)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return ErrDegenerateGain
	}

	gain := 1 / mag
	if gain != 1 {
		for i := range r.num {
			r.num[i] *= gain
		}
	}

	return nil
}
