// Package polyroot finds the complex roots of real polynomials. The primary
// solver takes the eigenvalues of the companion matrix; Durand-Kerner
// iteration serves as a fallback when the eigen decomposition fails.
package polyroot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegeneratePolynomial is returned when a polynomial has a
	// numerically zero or non-finite leading coefficient, or any non-finite
	// coefficient.
	ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

	// ErrNoConvergence is returned when neither the eigenvalue solver nor
	// the Durand-Kerner fallback converged. It never stands for "no roots".
	ErrNoConvergence = errors.New("polyroot: root iteration did not converge")
)

// leadTol is the smallest |coeff[0]| / max|coeff| accepted as a nonzero
// leading coefficient.
const leadTol = 2.220446049250313e-16

// Solver stages. Tests replace them to drive the fallback paths.
var (
	eigenvalues = companionEigenvalues
	fallback    = DurandKerner
)

// Roots returns the n roots of a degree-n real polynomial given in
// descending power order: coeff[0]*x^n + ... + coeff[n]. Polynomials of
// degree <= 0 have no roots and yield (nil, nil).
//
// The order of the returned roots is unspecified.
func Roots(coeff []float64) ([]complex128, error) {
	if len(coeff) <= 1 {
		return nil, nil
	}

	companion, err := Companion(coeff)
	if err != nil {
		return nil, err
	}

	if roots, ok := eigenvalues(companion); ok {
		return roots, nil
	}

	roots, err := fallback(coeff)
	if err != nil {
		return nil, fmt.Errorf("%w: degree %d: %w", ErrNoConvergence, len(coeff)-1, err)
	}

	return roots, nil
}

func companionEigenvalues(m *mat.Dense) ([]complex128, bool) {
	var eig mat.Eigen
	if !eig.Factorize(m, mat.EigenNone) {
		return nil, false
	}
	return eig.Values(nil), true
}

// monic validates coeff and returns the trailing coefficients divided by
// the leading one, so that x^n + m[0]*x^(n-1) + ... + m[n-1] has the same
// roots.
func monic(coeff []float64) ([]float64, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	scale := 0.0
	for _, c := range coeff {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrDegeneratePolynomial
		}
		scale = math.Max(scale, math.Abs(c))
	}

	lead := coeff[0]
	if math.Abs(lead) <= leadTol*scale {
		return nil, ErrDegeneratePolynomial
	}

	m := make([]float64, len(coeff)-1)
	for i := range m {
		m[i] = coeff[i+1] / lead
	}

	return m, nil
}

// Companion builds the n x n companion matrix of a degree-n polynomial. The
// first row holds the negated monic trailing coefficients and the
// subdiagonal is the identity, so the eigenvalues equal the roots.
func Companion(coeff []float64) (*mat.Dense, error) {
	m, err := monic(coeff)
	if err != nil {
		return nil, err
	}

	n := len(m)
	c := mat.NewDense(n, n, nil)
	for i, v := range m {
		c.Set(0, i, -v)
		if i < n-1 {
			c.Set(i+1, i, 1)
		}
	}

	return c, nil
}

// DurandKerner finds all roots of a real polynomial, descending power
// order, by Weierstrass simultaneous iteration. It starts from powers of
// 0.4+0.9i scaled to the Fujiwara bound of the root magnitudes and updates
// the estimates in place (Gauss-Seidel style). It returns
// [ErrDegeneratePolynomial] for invalid input and [ErrNoConvergence] when
// the residuals stay large.
func DurandKerner(coeff []float64) ([]complex128, error) {
	m, err := monic(coeff)
	if err != nil {
		return nil, err
	}

	n := len(m)
	radius := fujiwara(m)

	roots := make([]complex128, n)
	seed := complex(0.4, 0.9)
	z := complex(1, 0)
	for i := range roots {
		z *= seed
		roots[i] = complex(radius, 0) * z / complex(cmplx.Abs(z), 0)
	}

	const (
		maxIter = 1000
		relTol  = 1e-14
	)

	for range maxIter {
		worst := 0.0
		for i, zi := range roots {
			den := complex(1, 0)
			for j, zj := range roots {
				if j != i {
					den *= zi - zj
				}
			}
			if den == 0 {
				// Coincident estimates: nudge one off the other.
				roots[i] = zi * complex(1+1e-8, 1e-8)
				worst = math.Inf(1)
				continue
			}

			step := monicEval(m, zi) / den
			roots[i] = zi - step
			worst = math.Max(worst, cmplx.Abs(step)/math.Max(1, cmplx.Abs(roots[i])))
		}

		if worst < relTol {
			return roots, nil
		}
	}

	// Slow convergence near multiple roots still leaves usable estimates.
	for _, r := range roots {
		if cmplx.Abs(monicEval(m, r)) > 1e-6*math.Max(1, math.Pow(cmplx.Abs(r), float64(n))) {
			return nil, ErrNoConvergence
		}
	}

	return roots, nil
}

// fujiwara bounds the root magnitudes of the monic polynomial m.
func fujiwara(m []float64) float64 {
	n := len(m)
	bound := 0.0
	for i, c := range m {
		v := math.Abs(c)
		if i == n-1 {
			v /= 2
		}
		bound = math.Max(bound, math.Pow(v, 1/float64(i+1)))
	}
	if bound == 0 {
		return 1
	}
	return 2 * bound
}

// monicEval evaluates x^n + m[0]*x^(n-1) + ... + m[n-1].
func monicEval(m []float64, x complex128) complex128 {
	v := complex(1, 0)
	for _, c := range m {
		v = v*x + complex(c, 0)
	}
	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	return math.Abs(imag(a)+imag(b)) <= tol*math.Max(1, math.Abs(imag(a)))
}

// ConjugateClosed reports whether every non-real root in roots has a
// distinct conjugate partner. Roots whose imaginary part is within tol of
// zero count as real and need no partner. A polynomial expanded from a
// conjugate-closed root set has real coefficients.
func ConjugateClosed(roots []complex128, tol float64) bool {
	used := make([]bool, len(roots))

	for i, root := range roots {
		if used[i] {
			continue
		}
		used[i] = true

		if math.Abs(imag(root)) <= tol*math.Max(1, cmplx.Abs(root)) {
			continue
		}

		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := range roots {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], tol) {
			return false
		}
		used[best] = true
	}

	return true
}
