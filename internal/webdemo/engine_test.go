package webdemo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lti/internal/testutil"
	"github.com/cwbudde/algo-lti/lti/sim"
)

const rc = `{"system": {"numerator": [1], "denominator": [1, 1]}, "discrete": {"sample_time": 0.1}}`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e := NewEngine()
	if err := e.SetSystem(rc); err != nil {
		t.Fatalf("SetSystem: %v", err)
	}

	return e
}

func TestEngine_NoSystem(t *testing.T) {
	e := NewEngine()

	if _, err := e.Bode(nil, false); !errors.Is(err, ErrNoSystem) {
		t.Fatalf("Bode err = %v", err)
	}
	if _, _, err := e.Response("step", 1); !errors.Is(err, ErrNoSystem) {
		t.Fatalf("Response err = %v", err)
	}
	if _, _, err := e.Roots(true); !errors.Is(err, ErrNoSystem) {
		t.Fatalf("Roots err = %v", err)
	}

	buf := []float64{1, 2}
	e.Process(buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 0}, 0)
}

func TestEngine_SetSystemKeepsPreviousOnError(t *testing.T) {
	e := newTestEngine(t)

	if err := e.SetSystem(`{"system": {}}`); err == nil {
		t.Fatal("expected error for empty system")
	}
	if err := e.SetSystem(`not json`); err == nil {
		t.Fatal("expected error for malformed json")
	}

	poles, _, err := e.Roots(false)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireRootsNearlyEqual(t, poles, []complex128{-1}, 1e-12)
}

func TestEngine_Bode(t *testing.T) {
	e := newTestEngine(t)

	curve, err := e.Bode([]float64{1}, false)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(curve.MagDB[0]+10*math.Log10(2)) > 1e-12 {
		t.Fatalf("MagDB = %v", curve.MagDB[0])
	}

	curve, err = e.Bode(nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(curve.Omega) != 200 || len(curve.MagDB) != 200 || len(curve.Phase) != 200 {
		t.Fatalf("default grid lengths (%d, %d, %d)", len(curve.Omega), len(curve.MagDB), len(curve.Phase))
	}
}

func TestEngine_Response(t *testing.T) {
	e := newTestEngine(t)

	times, values, err := e.Response("impulse", 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 4 || len(values) != 4 {
		t.Fatalf("lengths (%d, %d), want 4", len(times), len(values))
	}

	// Defaults: step over 10 s.
	times, _, err = e.Response("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 101 {
		t.Fatalf("default response has %d samples, want 101", len(times))
	}

	if _, _, err := e.Response("chirp", 1); !errors.Is(err, sim.ErrUnknownResponseType) {
		t.Fatalf("err = %v", err)
	}
}

func TestEngine_ProcessMatchesSimulation(t *testing.T) {
	e := newTestEngine(t)

	want, err := sim.Simulate(e.dt, sim.Step, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Two blocks continue where the previous one stopped.
	buf := testutil.Ones(len(want))
	e.Process(buf[:5])
	e.Process(buf[5:])
	testutil.RequireSliceNearlyEqual(t, buf, sim.Values(want), 1e-15)

	e.ResetStream()
	first := []float64{1}
	e.Process(first)
	if first[0] != want[0].Mag {
		t.Fatalf("after reset got %v, want %v", first[0], want[0].Mag)
	}
}

func TestEngine_Text(t *testing.T) {
	e := newTestEngine(t)

	s, err := e.Text(false)
	if err != nil {
		t.Fatal(err)
	}
	if s != "    1.000\n--------------\n1.000s + 1.000" {
		t.Fatalf("Text = %q", s)
	}
}
