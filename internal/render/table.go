package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
	"github.com/cwbudde/algo-lti/lti/tf"
)

// Variable returns "s" for continuous and "z" for discrete functions.
func Variable(t tf.TransferFunction) string {
	if t.Domain().Kind == tf.KindDiscrete {
		return "z"
	}
	return "s"
}

// WriteInfo prints the coefficient fraction, order, gain, stability and
// root locations of t.
func WriteInfo(w io.Writer, title string, t tf.TransferFunction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s (%s)\n\n%s\n\n", title, t.Domain(), Fraction(t.Numerator(), t.Denominator(), Variable(t))); err != nil {
		return err
	}

	rows := [][2]string{
		{"Numerator", Coeffs(t.Numerator())},
		{"Denominator", Coeffs(t.Denominator())},
		{"Order", fmt.Sprint(t.Order())},
		{"DC gain", fmt.Sprintf("%.6g", t.DCGain())},
		{"Stable", fmt.Sprint(t.Stable())},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}

	if err := writeRoots(tw, "Pole", t.Poles()); err != nil {
		return err
	}
	if err := writeRoots(tw, "Zero", t.Zeroes()); err != nil {
		return err
	}

	return tw.Flush()
}

func writeRoots(w io.Writer, label string, roots []complex128) error {
	for i, r := range roots {
		if _, err := fmt.Fprintf(w, "%s %d\t%s\n", label, i+1, Complex(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteBodeTable prints one row per Bode point. When unwrapped is not nil
// it replaces the principal phase column.
func WriteBodeTable(w io.Writer, points []freq.BodePoint, unwrapped []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Omega [rad/s]\tMagnitude [dB]\tPhase [rad]\n-------------\t--------------\t-----------\n"); err != nil {
		return err
	}

	for i, p := range points {
		phase := p.PhaseRad
		if unwrapped != nil {
			phase = unwrapped[i]
		}
		if _, err := fmt.Fprintf(tw, "%.6g\t%.4f\t%.4f\n", p.Omega, p.MagDB, phase); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// WriteResponseTable prints one row per response sample.
func WriteResponseTable(w io.Writer, points []sim.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [s]\tOutput\n--------\t------\n"); err != nil {
		return err
	}

	for _, p := range points {
		if _, err := fmt.Fprintf(tw, "%.6g\t%.6g\n", p.Time, p.Mag); err != nil {
			return err
		}
	}

	return tw.Flush()
}
