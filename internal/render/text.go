// Package render formats transfer functions and analysis results for
// terminals and files: coefficient text, aligned tables, ASCII plots and
// CSV.
package render

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// zeroTol hides coefficients that are zero up to rounding.
const zeroTol = 1e-12

// Poly renders coefficients (highest power first) as a polynomial in
// variable, for example "2.000s^2 - 0.500s + 1.000". Negligible terms are
// skipped; a polynomial with no remaining terms renders as "0".
func Poly(coeffs []float64, variable string) string {
	var b strings.Builder

	degree := len(coeffs) - 1
	for i, c := range coeffs {
		if math.Abs(c) < zeroTol {
			continue
		}

		switch {
		case b.Len() == 0 && c < 0:
			b.WriteString("-")
		case b.Len() > 0 && c < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}

		fmt.Fprintf(&b, "%.3f", math.Abs(c))
		switch power := degree - i; power {
		case 0:
		case 1:
			b.WriteString(variable)
		default:
			fmt.Fprintf(&b, "%s^%d", variable, power)
		}
	}

	if b.Len() == 0 {
		return "0"
	}

	return b.String()
}

// Fraction renders num/den as three lines: the centered numerator, a rule
// and the centered denominator.
func Fraction(num, den []float64, variable string) string {
	top, bottom := Poly(num, variable), Poly(den, variable)
	width := max(len(top), len(bottom))

	center := func(s string) string {
		return strings.Repeat(" ", (width-len(s))/2) + s
	}

	return center(top) + "\n" + strings.Repeat("-", width) + "\n" + center(bottom)
}

// Coeffs renders coefficients as a comma-separated list with six decimals.
func Coeffs(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = fmt.Sprintf("%.6f", c)
	}
	return strings.Join(parts, ", ")
}

// Complex renders a root as "a+bj" with six decimals, or "a" when the
// imaginary part is negligible.
func Complex(c complex128) string {
	if math.Abs(imag(c)) < zeroTol*math.Max(1, cmplx.Abs(c)) {
		return fmt.Sprintf("%.6f", real(c))
	}
	return fmt.Sprintf("%.6f%+.6fj", real(c), imag(c))
}
