package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteBodeCSV writes omega, magnitude and phase columns with a header.
// When unwrapped is not nil an extra unwrapped-phase column is added.
func WriteBodeCSV(w io.Writer, points []freq.BodePoint, unwrapped []float64) error {
	cw := csv.NewWriter(w)

	header := []string{"omega", "mag_db", "phase_rad"}
	if unwrapped != nil {
		header = append(header, "phase_unwrapped_rad")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, p := range points {
		row := []string{formatFloat(p.Omega), formatFloat(p.MagDB), formatFloat(p.PhaseRad)}
		if unwrapped != nil {
			row = append(row, formatFloat(unwrapped[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteResponseCSV writes time and output columns with a header.
func WriteResponseCSV(w io.Writer, points []sim.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "output"}); err != nil {
		return err
	}

	for _, p := range points {
		if err := cw.Write([]string{formatFloat(p.Time), formatFloat(p.Mag)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
