package bilinear

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-lti/internal/testutil"
	"github.com/cwbudde/algo-lti/lti/poly"
)

func TestTransform_FirstOrderLowpass(t *testing.T) {
	// H(s) = 1/(s+1), T = 1
	numZ, denZ, err := Transform([]float64{1}, []float64{1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, numZ, []float64{1.0 / 3, 1.0 / 3}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, denZ, []float64{1, -1.0 / 3}, 1e-15)
}

func TestTransform_SecondOrderKnownCoefficients(t *testing.T) {
	// H(s) = 1/(s^2 + s + 1), T = 2 gives k = 1:
	// num = (z+1)^2, den = (z-1)^2 + (z-1)(z+1) + (z+1)^2 = 3z^2 + 1
	numZ, denZ, err := Transform([]float64{1}, []float64{1, 1, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, numZ, []float64{1.0 / 3, 2.0 / 3, 1.0 / 3}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, denZ, []float64{1, 0, 1.0 / 3}, 1e-15)
}

func TestTransform_DegreeIsMaxOrder(t *testing.T) {
	tests := []struct {
		name     string
		num, den []float64
		want     int
	}{
		{"strictly proper", []float64{1}, []float64{1, 2, 3}, 3},
		{"biproper", []float64{1, 0}, []float64{1, 5}, 2},
		{"improper", []float64{1, 0, 0}, []float64{1, 5}, 3},
		{"static gain", []float64{4}, []float64{2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			numZ, denZ, err := Transform(tt.num, tt.den, 0.1)
			if err != nil {
				t.Fatal(err)
			}
			if len(numZ) != tt.want || len(denZ) != tt.want {
				t.Fatalf("lengths = (%d, %d), want %d", len(numZ), len(denZ), tt.want)
			}
			if denZ[0] != 1 {
				t.Fatalf("denominator not monic: %v", denZ)
			}
		})
	}
}

func TestTransform_PreservesDCGain(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		num := testutil.DeterministicNoise(seed, 2, 1+int(seed%3))
		den := append([]float64{1}, testutil.DeterministicNoise(seed+50, 2, 2+int(seed%3))...)
		den[len(den)-1] = math.Abs(den[len(den)-1]) + 0.5

		numZ, denZ, err := Transform(num, den, 0.5)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		hc := poly.Eval(num, 0) / poly.Eval(den, 0)
		hd := poly.Eval(numZ, 1) / poly.Eval(denZ, 1)
		if cmplx.Abs(hc-hd) > 1e-9*math.Max(1, cmplx.Abs(hc)) {
			t.Fatalf("seed %d: DC gain %v, discrete %v", seed, hc, hd)
		}
	}
}

func TestTransform_FrequencyWarping(t *testing.T) {
	// Tustin maps the discrete frequency w to the analog frequency
	// (2/T)*tan(w*T/2), so the responses agree at those paired points.
	num, den := []float64{1}, []float64{1, 1}
	T := 0.2

	numZ, denZ, err := Transform(num, den, T)
	if err != nil {
		t.Fatal(err)
	}

	for _, w := range []float64{0.5, 2, 8} {
		wa := 2 / T * math.Tan(w*T/2)
		hc := poly.Eval(num, complex(0, wa)) / poly.Eval(den, complex(0, wa))
		z := cmplx.Exp(complex(0, w*T))
		hd := poly.Eval(numZ, z) / poly.Eval(denZ, z)
		if cmplx.Abs(hc-hd) > 1e-12 {
			t.Fatalf("w=%v: continuous %v, discrete %v", w, hc, hd)
		}
	}
}

func TestTransform_Prewarp(t *testing.T) {
	num, den := []float64{1}, []float64{1, 1}
	T, w := 0.5, 1.0

	numZ, denZ, err := Transform(num, den, T, WithPrewarp(w))
	if err != nil {
		t.Fatal(err)
	}

	hc := poly.Eval(num, complex(0, w)) / poly.Eval(den, complex(0, w))
	z := cmplx.Exp(complex(0, w*T))
	hd := poly.Eval(numZ, z) / poly.Eval(denZ, z)

	if cmplx.Abs(hc-hd) > 1e-12 {
		t.Fatalf("prewarped response at w: continuous %v, discrete %v", hc, hd)
	}
}

func TestTransform_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		num  []float64
		den  []float64
		ts   float64
		opts []Option
		want error
	}{
		{"empty num", nil, []float64{1, 1}, 1, nil, ErrEmptyPolynomial},
		{"empty den", []float64{1}, []float64{}, 1, nil, ErrEmptyPolynomial},
		{"zero ts", []float64{1}, []float64{1, 1}, 0, nil, ErrInvalidSampleTime},
		{"negative ts", []float64{1}, []float64{1, 1}, -1, nil, ErrInvalidSampleTime},
		{"nan ts", []float64{1}, []float64{1, 1}, math.NaN(), nil, ErrInvalidSampleTime},
		{"inf ts", []float64{1}, []float64{1, 1}, math.Inf(1), nil, ErrInvalidSampleTime},
		{"prewarp above nyquist", []float64{1}, []float64{1, 1}, 1, []Option{WithPrewarp(4)}, ErrInvalidPrewarp},
		{"negative prewarp", []float64{1}, []float64{1, 1}, 1, []Option{WithPrewarp(-1)}, ErrInvalidPrewarp},
		{"pole at 2/T", []float64{1}, []float64{1, -2}, 1, nil, ErrDegenerateResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Transform(tt.num, tt.den, tt.ts, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTransform_OrderTooHigh(t *testing.T) {
	den := make([]float64, poly.MaxBinomialOrder+2)
	den[0] = 1
	den[len(den)-1] = 1

	_, _, err := Transform([]float64{1}, den, 0.1)
	if !errors.Is(err, poly.ErrOrderOutOfRange) {
		t.Fatalf("err = %v, want poly.ErrOrderOutOfRange", err)
	}
}

func TestTransform_MaxSupportedOrder(t *testing.T) {
	den := make([]float64, poly.MaxBinomialOrder+1)
	den[0] = 1
	den[len(den)-1] = 1

	numZ, denZ, err := Transform([]float64{1}, den, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, numZ)
	testutil.RequireFinite(t, denZ)
}
