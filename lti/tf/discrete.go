package tf

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lti/lti/bilinear"
)

// Discrete is a z-domain transfer function with a fixed sample time.
type Discrete struct {
	rational

	sampleTime float64
}

var _ TransferFunction = (*Discrete)(nil)

// NewDiscrete builds H(z) = num(z)/den(z) sampled every sampleTime seconds.
func NewDiscrete(num, den []float64, sampleTime float64) (*Discrete, error) {
	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleTime, sampleTime)
	}

	r, err := newRational(num, den)
	if err != nil {
		return nil, err
	}

	return &Discrete{rational: r, sampleTime: sampleTime}, nil
}

// DiscreteFromContinuous discretizes c with the bilinear (Tustin) transform
// and re-derives poles and zeroes in the z plane. Both resulting
// polynomials have the larger of the two source degrees.
func DiscreteFromContinuous(c *Continuous, sampleTime float64, opts ...bilinear.Option) (*Discrete, error) {
	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleTime, sampleTime)
	}

	numZ, denZ, err := bilinear.Transform(c.num, c.den, sampleTime, opts...)
	if err != nil {
		return nil, fmt.Errorf("tf: discretize: %w", err)
	}

	return NewDiscrete(numZ, denZ, sampleTime)
}

// SampleTime returns the sample period in seconds.
func (d *Discrete) SampleTime() float64 {
	return d.sampleTime
}

// Domain reports [KindDiscrete] with the sample time.
func (d *Discrete) Domain() Domain {
	return Domain{Kind: KindDiscrete, SampleTime: d.sampleTime}
}

// FrequencyResponse evaluates H(e^{jwT}) for each w.
func (d *Discrete) FrequencyResponse(omega []float64) []complex128 {
	out := make([]complex128, len(omega))
	for i, w := range omega {
		out[i] = d.Evaluate(d.unitCircle(w))
	}

	return out
}

// NormalizeAt scales the numerator so that |H(e^{jwT})| = 1.
func (d *Discrete) NormalizeAt(omega float64) error {
	return d.normalizeAt(d.Evaluate(d.unitCircle(omega)))
}

// DCGain returns real(H(1)).
func (d *Discrete) DCGain() float64 {
	return real(d.Evaluate(1))
}

// Stable reports whether every pole lies strictly inside the unit circle.
func (d *Discrete) Stable() bool {
	for _, p := range d.poles {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}

	return true
}

func (d *Discrete) unitCircle(omega float64) complex128 {
	return cmplx.Rect(1, omega*d.sampleTime)
}
