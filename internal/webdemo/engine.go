// Package webdemo holds the state behind the WebAssembly binding so that
// it can be exercised without a JavaScript runtime.
package webdemo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lti/internal/config"
	"github.com/cwbudde/algo-lti/internal/render"
	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
	"github.com/cwbudde/algo-lti/lti/tf"
)

// ErrNoSystem is returned by queries made before [Engine.SetSystem].
var ErrNoSystem = errors.New("webdemo: no system set")

// Curve is a Bode curve with magnitudes in dB and phases in radians.
type Curve struct {
	Omega []float64
	MagDB []float64
	Phase []float64
}

// Engine keeps the current system in both domains plus a running
// simulator for streaming input through the discrete system.
type Engine struct {
	cfg    *config.Config
	ct     *tf.Continuous
	dt     *tf.Discrete
	stream *sim.Simulator
}

// NewEngine creates an engine with no system.
func NewEngine() *Engine {
	return &Engine{}
}

// SetSystem replaces the current system with the JSON description doc,
// which uses the same keys as the YAML configuration files. On error the
// previous system stays active.
func (e *Engine) SetSystem(doc string) error {
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return fmt.Errorf("webdemo: %w", err)
	}

	cfg, err := config.Decode(raw)
	if err != nil {
		return err
	}

	ct, dt, err := cfg.Build()
	if err != nil {
		return err
	}

	e.cfg, e.ct, e.dt = cfg, ct, dt
	e.stream = sim.New(dt)

	return nil
}

func (e *Engine) system(discrete bool) (tf.TransferFunction, error) {
	if e.cfg == nil {
		return nil, ErrNoSystem
	}
	if discrete {
		return e.dt, nil
	}
	return e.ct, nil
}

// Bode evaluates the selected system on omega. With a nil omega the
// configured logarithmic grid is used.
func (e *Engine) Bode(omega []float64, discrete bool) (Curve, error) {
	sys, err := e.system(discrete)
	if err != nil {
		return Curve{}, err
	}

	if omega == nil {
		omega = freq.Logspace(e.cfg.Bode.StartExp, e.cfg.Bode.StopExp, e.cfg.Bode.Points)
	}

	points := freq.Bode(sys, omega)
	phase := freq.Phases(points)
	if e.cfg.Bode.Unwrap {
		phase = freq.UnwrapPhase(points)
	}

	return Curve{Omega: omega, MagDB: freq.Magnitudes(points), Phase: phase}, nil
}

// Response simulates the discrete system. An empty responseType or a
// non-positive tEnd falls back to the configured value.
func (e *Engine) Response(responseType string, tEnd float64) (times, values []float64, err error) {
	if e.cfg == nil {
		return nil, nil, ErrNoSystem
	}

	if responseType == "" {
		responseType = e.cfg.Response.Type
	}
	if !(tEnd > 0) {
		tEnd = e.cfg.Response.TEnd
	}

	rt, err := sim.ParseResponseType(responseType)
	if err != nil {
		return nil, nil, err
	}

	points, err := sim.Simulate(e.dt, rt, tEnd)
	if err != nil {
		return nil, nil, err
	}

	return sim.Times(points), sim.Values(points), nil
}

// Roots returns the poles and zeroes of the selected system.
func (e *Engine) Roots(discrete bool) (poles, zeroes []complex128, err error) {
	sys, err := e.system(discrete)
	if err != nil {
		return nil, nil, err
	}
	return sys.Poles(), sys.Zeroes(), nil
}

// Text renders the coefficient fraction of the selected system.
func (e *Engine) Text(discrete bool) (string, error) {
	sys, err := e.system(discrete)
	if err != nil {
		return "", err
	}
	return render.Fraction(sys.Numerator(), sys.Denominator(), render.Variable(sys)), nil
}

// Process filters buf in place through the discrete system, continuing
// from the previous call. Without a causal system buf is zeroed.
func (e *Engine) Process(buf []float64) {
	if e.stream == nil || e.stream.Degenerate() {
		clear(buf)
		return
	}

	for i, x := range buf {
		y := e.stream.ProcessSample(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			y = 0
		}
		buf[i] = y
	}
}

// ResetStream clears the streaming simulator history.
func (e *Engine) ResetStream() {
	if e.stream != nil {
		e.stream.Reset()
	}
}
