package poly

import "math"

// Number is the coefficient type accepted by the generic helpers.
type Number interface {
	~float64 | ~complex128
}

// Convolve multiplies two polynomials. The result has length
// len(f)+len(g)-1, or is nil when either input is empty.
func Convolve[T Number](f, g []T) []T {
	if len(f) == 0 || len(g) == 0 {
		return nil
	}

	out := make([]T, len(f)+len(g)-1)
	for i, fi := range f {
		for j, gj := range g {
			out[i+j] += fi * gj
		}
	}

	return out
}

// Add sums two polynomials of possibly different length. Both are aligned at
// their lowest-order end, so the shorter one is padded with leading zeros.
func Add[T Number](a, b []T) []T {
	n := max(len(a), len(b))
	out := make([]T, n)

	offA := n - len(a)
	for i, v := range a {
		out[offA+i] += v
	}

	offB := n - len(b)
	for i, v := range b {
		out[offB+i] += v
	}

	return out
}

// Scale returns a copy of p with every coefficient multiplied by k.
func Scale(p []float64, k float64) []float64 {
	if p == nil {
		return nil
	}

	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = c * k
	}

	return out
}

// PadLeft returns a copy of p left-padded with zeros to length n. If p is
// already at least n long, an unpadded copy is returned.
func PadLeft(p []float64, n int) []float64 {
	if len(p) >= n {
		return append([]float64(nil), p...)
	}

	out := make([]float64, n)
	copy(out[n-len(p):], p)

	return out
}

// Trim returns a copy of p without leading zero coefficients. The zero
// polynomial trims to an empty slice.
func Trim(p []float64) []float64 {
	i := 0
	for i < len(p) && p[i] == 0 {
		i++
	}

	return append([]float64{}, p[i:]...)
}

// Degree returns the degree of p after trimming leading zeros, or -1 for the
// zero polynomial.
func Degree(p []float64) int {
	return len(Trim(p)) - 1
}

// Eval evaluates p at x with Horner's method. The empty polynomial
// evaluates to zero.
func Eval(p []float64, x complex128) complex128 {
	var acc complex128
	for _, c := range p {
		acc = acc*x + complex(c, 0)
	}

	return acc
}

// FromRoots expands the monic polynomial prod(x - r) over all roots.
// An empty root list yields the constant polynomial [1].
func FromRoots(roots []complex128) []complex128 {
	out := []complex128{1}
	for _, r := range roots {
		out = Convolve(out, []complex128{1, -r})
	}

	return out
}

// ReduceToReal keeps the real part of every coefficient.
//
// The imaginary parts are dropped without inspection. They only cancel when
// the roots that produced coeffs are closed under conjugation, which the
// caller has to guarantee.
func ReduceToReal(coeffs []complex128) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}

	return out
}

// MaxImag returns the largest absolute imaginary part in coeffs. Callers use
// it to judge how much [ReduceToReal] is about to discard.
func MaxImag(coeffs []complex128) float64 {
	m := 0.0
	for _, c := range coeffs {
		if v := math.Abs(imag(c)); v > m {
			m = v
		}
	}

	return m
}

// MaxAbs returns the largest coefficient magnitude of p.
func MaxAbs(p []float64) float64 {
	m := 0.0
	for _, c := range p {
		if v := math.Abs(c); v > m {
			m = v
		}
	}

	return m
}

// IsFinite reports whether every coefficient is neither NaN nor Inf.
func IsFinite(p []float64) bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
