package freq

import "math"

// Linspace returns count evenly spaced values from start to stop inclusive.
// A count of zero returns nil and a count of one returns [start].
func Linspace(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{start}
	}

	out := make([]float64, count)
	step := (stop - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Land exactly on stop regardless of rounding in step.
	out[count-1] = stop

	return out
}

// Logspace returns count values 10^e for e evenly spaced from startExp to
// stopExp inclusive.
func Logspace(startExp, stopExp float64, count int) []float64 {
	exps := Linspace(startExp, stopExp, count)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}

	return exps
}
