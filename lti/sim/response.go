package sim

import (
	"fmt"
	"strings"
)

// ResponseType selects the test input fed to a system.
type ResponseType int

const (
	// Impulse is a unit sample at t = 0 followed by zeros.
	Impulse ResponseType = iota
	// Step is a constant one.
	Step
	// Ramp is x[i] = i*T.
	Ramp
)

// String returns the lower-case name of the response type.
func (r ResponseType) String() string {
	switch r {
	case Impulse:
		return "impulse"
	case Step:
		return "step"
	case Ramp:
		return "ramp"
	default:
		return fmt.Sprintf("ResponseType(%d)", int(r))
	}
}

// ParseResponseType parses a response type name, ignoring case.
func ParseResponseType(s string) (ResponseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "impulse":
		return Impulse, nil
	case "step":
		return Step, nil
	case "ramp":
		return Ramp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownResponseType, s)
	}
}

// Input returns count samples of the test signal for sample time ts.
func (r ResponseType) Input(count int, ts float64) []float64 {
	if count <= 0 {
		return nil
	}

	x := make([]float64, count)
	switch r {
	case Impulse:
		x[0] = 1
	case Step:
		for i := range x {
			x[i] = 1
		}
	case Ramp:
		for i := range x {
			x[i] = float64(i) * ts
		}
	}

	return x
}

// Point is one sample of a time response.
type Point struct {
	// Time is index*T in seconds.
	Time float64
	// Mag is the system output at Time.
	Mag float64
}

// Times returns the Time column of points.
func Times(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Time
	}
	return out
}

// Values returns the Mag column of points.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Mag
	}
	return out
}
