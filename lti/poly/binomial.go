package poly

import (
	"errors"
	"fmt"
)

// MaxBinomialOrder is the largest power supported by [BinomialExpansion].
const MaxBinomialOrder = 20

// ErrOrderOutOfRange is returned when a binomial expansion is requested for
// a power outside [0, MaxBinomialOrder].
var ErrOrderOutOfRange = errors.New("poly: order out of range")

// pascal holds rows 0..MaxBinomialOrder of Pascal's triangle. It is built
// once at package init and never written afterwards.
var pascal = buildPascal(MaxBinomialOrder)

func buildPascal(maxOrder int) [][]float64 {
	rows := make([][]float64, maxOrder+1)
	rows[0] = []float64{1}

	for i := 1; i <= maxOrder; i++ {
		row := make([]float64, i+1)
		row[0], row[i] = 1, 1
		for j := 1; j < i; j++ {
			row[j] = rows[i-1][j-1] + rows[i-1][j]
		}
		rows[i] = row
	}

	return rows
}

// BinomialExpansion returns the coefficients of (x+1)^power, or of
// (x-1)^power when negateOdd is set, highest power first. The second form
// is the first with every odd-indexed coefficient negated.
//
//	BinomialExpansion(4, false) = [1 4 6 4 1]
//	BinomialExpansion(4, true)  = [1 -4 6 -4 1]
func BinomialExpansion(power int, negateOdd bool) ([]float64, error) {
	if power < 0 || power > MaxBinomialOrder {
		return nil, fmt.Errorf("%w: power %d not in [0,%d]", ErrOrderOutOfRange, power, MaxBinomialOrder)
	}

	out := append([]float64(nil), pascal[power]...)
	if negateOdd {
		for i := 1; i < len(out); i += 2 {
			out[i] = -out[i]
		}
	}

	return out, nil
}
