package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lti/internal/render"
	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/tf"
)

func newBodeCmd(sf *systemFlags) *cobra.Command {
	var (
		startExp, stopExp float64
		points            int
		unwrap, discrete  bool
		format            string
	)

	cmd := &cobra.Command{
		Use:   "bode",
		Short: "Compute a Bode plot on a logarithmic frequency grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "csv", "plot"); err != nil {
				return err
			}

			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("start-exp") {
				cfg.Bode.StartExp = startExp
			}
			if flags.Changed("stop-exp") {
				cfg.Bode.StopExp = stopExp
			}
			if flags.Changed("points") {
				cfg.Bode.Points = points
			}
			if flags.Changed("unwrap") {
				cfg.Bode.Unwrap = unwrap
			}

			ct, dt, err := cfg.Build()
			if err != nil {
				return err
			}

			var sys tf.TransferFunction = ct
			if discrete {
				sys = dt
			}

			omega := freq.Logspace(cfg.Bode.StartExp, cfg.Bode.StopExp, cfg.Bode.Points)
			bode := freq.Bode(sys, omega)
			var unwrapped []float64
			if cfg.Bode.Unwrap {
				unwrapped = freq.UnwrapPhase(bode)
			}
			sf.logger.Info("bode", "domain", sys.Domain(), "points", len(bode))

			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				return render.WriteBodeCSV(out, bode, unwrapped)
			case "plot":
				mag, phase := render.PlotBode(bode, unwrapped, render.DefaultPlotOptions)
				_, err := fmt.Fprintf(out, "%s\n\n%s\n", mag, phase)
				return err
			default:
				return render.WriteBodeTable(out, bode, unwrapped)
			}
		},
	}

	f := cmd.Flags()
	f.Float64Var(&startExp, "start-exp", 0, "lowest frequency as a power of ten (rad/s)")
	f.Float64Var(&stopExp, "stop-exp", 0, "highest frequency as a power of ten (rad/s)")
	f.IntVarP(&points, "points", "n", 0, "number of frequencies")
	f.BoolVar(&unwrap, "unwrap", false, "unwrap the phase")
	f.BoolVarP(&discrete, "discrete", "d", false, "analyze the discretized system")
	addFormatFlag(cmd, &format, "table", "csv", "plot")

	return cmd
}
