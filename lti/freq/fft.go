package freq

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-lti/lti/poly"
	"github.com/cwbudde/algo-lti/lti/tf"
)

// ErrInvalidLength is returned by [Freqz] when the point count is not a
// positive power of two.
var ErrInvalidLength = errors.New("freq: point count must be a power of two")

// Freqz evaluates d on n uniformly spaced frequencies covering [0, pi/T)
// using two FFTs of size 2n, one for each polynomial. It returns the
// angular frequencies in rad/s and the complex response at each.
//
// The result matches d.FrequencyResponse on the same grid; Freqz is the
// cheaper choice for dense grids of high-order systems.
func Freqz(d *tf.Discrete, n int) ([]float64, []complex128, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	fftSize := 2 * n

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("freq: failed to create FFT plan: %w", err)
	}

	num, den := d.Numerator(), d.Denominator()
	size := max(len(num), len(den))

	numSpec, err := polySpectrum(plan, poly.PadLeft(num, size), fftSize)
	if err != nil {
		return nil, nil, err
	}

	denSpec, err := polySpectrum(plan, poly.PadLeft(den, size), fftSize)
	if err != nil {
		return nil, nil, err
	}

	omega := make([]float64, n)
	h := make([]complex128, n)
	for k := range n {
		omega[k] = math.Pi * float64(k) / (float64(n) * d.SampleTime())
		h[k] = divide(numSpec[k], denSpec[k])
	}

	return omega, h, nil
}

// polySpectrum treats p (highest power first, already padded to the common
// length) as the coefficient sequence of p(z)/z^(len-1) in powers of z^-1
// and transforms it. Terms beyond fftSize alias onto the grid, so they are
// folded modulo fftSize.
func polySpectrum(plan *algofft.Plan[complex128], p []float64, fftSize int) ([]complex128, error) {
	in := make([]complex128, fftSize)
	for i, c := range p {
		in[i%fftSize] += complex(c, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("freq: forward FFT: %w", err)
	}

	return out, nil
}

func divide(n, d complex128) complex128 {
	if d == 0 {
		if n == 0 {
			return cmplx.NaN()
		}
		return cmplx.Inf()
	}
	return n / d
}
