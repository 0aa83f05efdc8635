package render

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
	"github.com/cwbudde/algo-lti/lti/tf"
)

func TestPoly(t *testing.T) {
	tests := []struct {
		coeffs   []float64
		variable string
		want     string
	}{
		{[]float64{1, -0.5, 2}, "s", "1.000s^2 - 0.500s + 2.000"},
		{[]float64{-1, 0}, "z", "-1.000z"},
		{[]float64{0, 3, 1e-15}, "s", "3.000s"},
		{[]float64{0, 0}, "s", "0"},
		{nil, "s", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Poly(tt.coeffs, tt.variable))
	}
}

func TestFraction(t *testing.T) {
	got := Fraction([]float64{1}, []float64{1, 1}, "s")
	want := "    1.000\n--------------\n1.000s + 1.000"
	assert.Equal(t, want, got)
}

func TestCoeffsAndComplex(t *testing.T) {
	assert.Equal(t, "1.000000, -0.500000", Coeffs([]float64{1, -0.5}))
	assert.Equal(t, "", Coeffs(nil))
	assert.Equal(t, "-1.000000+2.000000j", Complex(complex(-1, 2)))
	assert.Equal(t, "-1.000000-2.000000j", Complex(complex(-1, -2)))
	assert.Equal(t, "-3.000000", Complex(complex(-3, 1e-20)))
}

func TestWriteInfo(t *testing.T) {
	c, err := tf.NewContinuous([]float64{1, 1}, []float64{1, 5, 6})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteInfo(&buf, "plant", c))

	out := buf.String()
	assert.Contains(t, out, "plant (continuous)")
	assert.Contains(t, out, "1.000s^2 + 5.000s + 6.000")
	assert.Contains(t, out, "Pole 1")
	assert.Contains(t, out, "Pole 2")
	assert.Contains(t, out, "Zero 1")
	assert.Contains(t, out, "-1.000000")
	assert.Regexp(t, `Stable\s+true`, out)
	assert.Regexp(t, `Order\s+2`, out)

	d, err := tf.DiscreteFromContinuous(c, 0.1)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteInfo(&buf, "plant", d))
	assert.Contains(t, buf.String(), "discrete(T=0.1)")
	assert.Contains(t, buf.String(), "z^2")
}

func TestWriteTables(t *testing.T) {
	points := []freq.BodePoint{{Omega: 1, MagDB: -3.0103, PhaseRad: -0.7854}}

	var buf bytes.Buffer
	require.NoError(t, WriteBodeTable(&buf, points, nil))
	assert.Contains(t, buf.String(), "Magnitude [dB]")
	assert.Contains(t, buf.String(), "-3.0103")
	assert.Contains(t, buf.String(), "-0.7854")

	buf.Reset()
	require.NoError(t, WriteBodeTable(&buf, points, []float64{-7.0686}))
	assert.Contains(t, buf.String(), "-7.0686")
	assert.NotContains(t, buf.String(), "-0.7854")

	buf.Reset()
	require.NoError(t, WriteResponseTable(&buf, []sim.Point{{Time: 0.5, Mag: 0.25}}))
	assert.Contains(t, buf.String(), "0.5")
	assert.Contains(t, buf.String(), "0.25")
}

func TestWriteBodeCSV(t *testing.T) {
	points := []freq.BodePoint{
		{Omega: 1, MagDB: -3, PhaseRad: 3},
		{Omega: 10, MagDB: -20, PhaseRad: -3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBodeCSV(&buf, points, []float64{3, 3.283185307}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"omega", "mag_db", "phase_rad", "phase_unwrapped_rad"}, records[0])
	assert.Equal(t, []string{"10", "-20", "-3", "3.283185307"}, records[2])
}

func TestWriteResponseCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponseCSV(&buf, []sim.Point{{Time: 0, Mag: 1}, {Time: 0.1, Mag: 0.5}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"time,output", "0,1", "0.1,0.5"}, lines)
}

func TestPlot(t *testing.T) {
	data := make([]float64, 50)
	for i := range data {
		data[i] = math.Sin(float64(i) / 5)
	}

	out := Plot(data, "sine", DefaultPlotOptions)
	assert.Contains(t, out, "sine")
	assert.Greater(t, strings.Count(out, "\n"), DefaultPlotOptions.Height-1)

	assert.Empty(t, Plot([]float64{math.Inf(1), math.NaN()}, "none", DefaultPlotOptions))
}

func TestPlotBodeAndResponse(t *testing.T) {
	c, err := tf.NewContinuous([]float64{1}, []float64{1, 1})
	require.NoError(t, err)

	points := freq.Bode(c, freq.Logspace(-1, 1, 30))
	mag, phase := PlotBode(points, nil, DefaultPlotOptions)
	assert.Contains(t, mag, "magnitude")
	assert.Contains(t, phase, "phase")

	d, err := tf.DiscreteFromContinuous(c, 0.1)
	require.NoError(t, err)
	resp := sim.SimulateN(d, sim.Step, 40)
	assert.Contains(t, PlotResponse(resp, "step response", DefaultPlotOptions), "step response")
}
