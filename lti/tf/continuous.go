package tf

import (
	"github.com/cwbudde/algo-lti/lti/poly"
)

// Continuous is an s-domain transfer function.
type Continuous struct {
	rational
}

var _ TransferFunction = (*Continuous)(nil)

// NewContinuous builds H(s) = num(s)/den(s) and derives its poles and
// zeroes. The only error is [ErrRootsUnavailable].
func NewContinuous(num, den []float64) (*Continuous, error) {
	r, err := newRational(num, den)
	if err != nil {
		return nil, err
	}

	return &Continuous{rational: r}, nil
}

// ContinuousFromPolesZeroes builds a monic numerator and denominator by
// expanding prod(s - z) and prod(s - p). The supplied roots are stored as
// given, not re-derived.
//
// The imaginary parts of the expanded coefficients are dropped. Pass
// conjugate-closed root sets; anything else silently loses accuracy.
func ContinuousFromPolesZeroes(poles, zeroes []complex128) *Continuous {
	return &Continuous{rational: rational{
		num:    poly.ReduceToReal(poly.FromRoots(zeroes)),
		den:    poly.ReduceToReal(poly.FromRoots(poles)),
		poles:  append([]complex128(nil), poles...),
		zeroes: append([]complex128(nil), zeroes...),
	}}
}

// Domain reports [KindContinuous].
func (c *Continuous) Domain() Domain {
	return Domain{Kind: KindContinuous}
}

// FrequencyResponse evaluates H(jw) for each w.
func (c *Continuous) FrequencyResponse(omega []float64) []complex128 {
	out := make([]complex128, len(omega))
	for i, w := range omega {
		out[i] = c.Evaluate(complex(0, w))
	}

	return out
}

// NormalizeAt scales the numerator so that |H(jw)| = 1. It returns
// [ErrDegenerateGain] and leaves c unchanged when |H(jw)| is zero or not
// finite.
func (c *Continuous) NormalizeAt(omega float64) error {
	return c.normalizeAt(c.Evaluate(complex(0, omega)))
}

// DCGain returns real(H(0)).
func (c *Continuous) DCGain() float64 {
	return real(c.Evaluate(0))
}

// Stable reports whether every pole has a negative real part.
func (c *Continuous) Stable() bool {
	for _, p := range c.poles {
		if real(p) >= 0 {
			return false
		}
	}

	return true
}
