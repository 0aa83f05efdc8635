// Package freq computes frequency-domain views of transfer functions: Bode
// magnitude and phase, frequency grids, and FFT-based responses of
// discrete systems.
package freq

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lti/lti/tf"
)

// BodePoint is one sample of a Bode plot.
type BodePoint struct {
	// Omega is the angular frequency in rad/s.
	Omega float64
	// MagDB is 20*log10|H|.
	MagDB float64
	// PhaseRad is the principal argument of H in (-pi, pi].
	PhaseRad float64
}

// Bode evaluates t at each angular frequency in omega and returns one
// point per frequency, in order. The phase is not unwrapped; see
// [UnwrapPhase].
//
// A zero response gives -Inf dB; a pole on the evaluation contour gives
// +Inf dB and a NaN phase.
func Bode(t tf.TransferFunction, omega []float64) []BodePoint {
	if len(omega) == 0 {
		return nil
	}

	h := t.FrequencyResponse(omega)

	re := make([]float64, len(h))
	im := make([]float64, len(h))
	for i, v := range h {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, len(h))
	vecmath.Magnitude(mag, re, im)

	out := make([]BodePoint, len(h))
	for i, v := range h {
		out[i] = BodePoint{
			Omega:    omega[i],
			MagDB:    20 * math.Log10(mag[i]),
			PhaseRad: principalPhase(v),
		}
	}

	return out
}

// principalPhase is cmplx.Phase folded into (-pi, pi]. A negative real
// value with a -0 imaginary part would otherwise give -pi.
func principalPhase(v complex128) float64 {
	ph := cmplx.Phase(v)
	if ph == -math.Pi {
		return math.Pi
	}
	return ph
}

// Magnitudes returns the MagDB column of points.
func Magnitudes(points []BodePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.MagDB
	}
	return out
}

// Phases returns the PhaseRad column of points.
func Phases(points []BodePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.PhaseRad
	}
	return out
}

// UnwrapPhase removes 2*pi jumps between consecutive phase samples of
// points. It is opt-in; [Bode] always reports the principal value.
func UnwrapPhase(points []BodePoint) []float64 {
	if len(points) == 0 {
		return nil
	}

	out := make([]float64, len(points))
	out[0] = points[0].PhaseRad
	offset := 0.0
	for i := 1; i < len(points); i++ {
		d := points[i].PhaseRad - points[i-1].PhaseRad
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = points[i].PhaseRad + offset
	}

	return out
}
