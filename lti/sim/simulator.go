package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lti/lti/tf"
)

// MaxPoints bounds the number of samples a single duration-based run may
// produce.
const MaxPoints = 100000

// countEpsilon absorbs rounding in tEnd/T so that an end time that is an
// exact multiple of the sample time includes its last sample.
const countEpsilon = 1e-9

// epsilon is the spacing between 1 and the next float64. A leading
// denominator coefficient below it counts as zero.
const epsilon = 2.220446049250313e-16

var (
	ErrTooManyPoints       = errors.New("sim: response would exceed MaxPoints samples")
	ErrInvalidDuration     = errors.New("sim: end time must be finite")
	ErrUnknownResponseType = errors.New("sim: unknown response type")
	ErrStateSize           = errors.New("sim: state length does not match system order")
)

// Simulator steps the difference equation of a discrete system. It is not
// safe for concurrent use.
type Simulator struct {
	b, a       []float64
	sampleTime float64
	degenerate bool

	// Newest sample first.
	input  []float64
	output []float64
}

// State is a snapshot of a [Simulator]'s history, newest sample first.
type State struct {
	Input  []float64
	Output []float64
}

// New prepares a simulator for d with zero history. The input history holds
// len(num) samples and the output history len(den)-1.
func New(d *tf.Discrete) *Simulator {
	s := &Simulator{
		b:          d.Numerator(),
		a:          d.Denominator(),
		sampleTime: d.SampleTime(),
	}
	s.degenerate = len(s.a) == 0 || math.Abs(s.a[0]) < epsilon
	s.input = make([]float64, len(s.b))
	s.output = make([]float64, max(0, len(s.a)-1))

	return s
}

// Degenerate reports whether the denominator is empty or its leading
// coefficient is numerically zero.
func (s *Simulator) Degenerate() bool {
	return s.degenerate
}

// SampleTime returns the sample period of the simulated system.
func (s *Simulator) SampleTime() float64 {
	return s.sampleTime
}

// ProcessSample feeds one input sample and returns the output. A
// degenerate simulator returns NaN.
func (s *Simulator) ProcessSample(x float64) float64 {
	if s.degenerate {
		return math.NaN()
	}

	shiftIn(s.input, x)

	forward := 0.0
	for k, bk := range s.b {
		forward += bk * s.input[k]
	}

	feedback := 0.0
	for k, yk := range s.output {
		feedback += s.a[k+1] * yk
	}

	y := (forward - feedback) / s.a[0]
	shiftIn(s.output, y)

	return y
}

// shiftIn moves every element one slot to the right and stores v at 0.
func shiftIn(buf []float64, v float64) {
	if len(buf) == 0 {
		return
	}
	copy(buf[1:], buf[:len(buf)-1])
	buf[0] = v
}

// Reset clears the input and output history.
func (s *Simulator) Reset() {
	clear(s.input)
	clear(s.output)
}

// State returns a copy of the current history.
func (s *Simulator) State() State {
	return State{
		Input:  append([]float64(nil), s.input...),
		Output: append([]float64(nil), s.output...),
	}
}

// SetState restores a history previously obtained from [Simulator.State].
func (s *Simulator) SetState(st State) error {
	if len(st.Input) != len(s.input) || len(st.Output) != len(s.output) {
		return fmt.Errorf("%w: got (%d, %d), want (%d, %d)", ErrStateSize,
			len(st.Input), len(st.Output), len(s.input), len(s.output))
	}

	copy(s.input, st.Input)
	copy(s.output, st.Output)

	return nil
}

// Count returns the number of samples covering [0, tEnd] at sample time
// ts: floor(tEnd/ts)+1, with negative tEnd treated as zero.
func Count(tEnd, ts float64) (int, error) {
	if math.IsNaN(tEnd) || math.IsInf(tEnd, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, tEnd)
	}

	steps := math.Floor(max(tEnd, 0)/ts + countEpsilon)
	if steps >= MaxPoints {
		return 0, fmt.Errorf("%w: %.0f samples", ErrTooManyPoints, steps+1)
	}

	return int(steps) + 1, nil
}

// Simulate resets s and runs rt from t = 0 to tEnd inclusive.
func (s *Simulator) Simulate(rt ResponseType, tEnd float64) ([]Point, error) {
	count, err := Count(tEnd, s.sampleTime)
	if err != nil {
		return nil, err
	}

	return s.SimulateN(rt, count), nil
}

// SimulateN resets s and runs rt for count samples. A degenerate system
// yields an empty, non-nil result.
func (s *Simulator) SimulateN(rt ResponseType, count int) []Point {
	if s.degenerate || count <= 0 {
		return []Point{}
	}

	s.Reset()
	x := rt.Input(count, s.sampleTime)
	out := make([]Point, count)
	for i, xi := range x {
		out[i] = Point{
			Time: float64(i) * s.sampleTime,
			Mag:  s.ProcessSample(xi),
		}
	}

	return out
}

// Simulate runs rt through d from t = 0 to tEnd inclusive.
func Simulate(d *tf.Discrete, rt ResponseType, tEnd float64) ([]Point, error) {
	return New(d).Simulate(rt, tEnd)
}

// SimulateN runs rt through d for count samples.
func SimulateN(d *tf.Discrete, rt ResponseType, count int) []Point {
	return New(d).SimulateN(rt, count)
}
