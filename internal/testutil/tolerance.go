package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps (absolute tolerance). An eps of
// zero demands exact equality.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireRootsNearlyEqual fails t unless got and want hold the same complex
// values as unordered multisets, each pair within eps. Root solvers give no
// ordering guarantee, so every wanted root is matched greedily to the
// closest unused returned root.
func RequireRootsNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if err := MatchRoots(got, want, eps); err != nil {
		t.Fatalf("%v (got %v, want %v)", err, got, want)
	}
}

// MatchRoots is the non-fatal form of [RequireRootsNearlyEqual].
func MatchRoots(got, want []complex128, eps float64) error {
	if len(got) != len(want) {
		return fmt.Errorf("root count mismatch: got %d, want %d", len(got), len(want))
	}

	used := make([]bool, len(got))
	for _, w := range want {
		best := -1
		bestDist := math.Inf(1)
		for j, g := range got {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(g - w); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 || bestDist > eps {
			return fmt.Errorf("no root within %v of %v (closest distance %v)", eps, w, bestDist)
		}
		used[best] = true
	}

	return nil
}
