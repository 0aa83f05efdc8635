package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lti/internal/render"
	"github.com/cwbudde/algo-lti/lti/sim"
)

func newResponseCmd(sf *systemFlags) *cobra.Command {
	var (
		responseType string
		tEnd         float64
		format       string
	)

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Simulate the impulse, step or ramp response of the discretized system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "csv", "plot"); err != nil {
				return err
			}

			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				cfg.Response.Type = responseType
			}
			if cmd.Flags().Changed("t-end") {
				cfg.Response.TEnd = tEnd
			}

			_, dt, err := cfg.Build()
			if err != nil {
				return err
			}
			rt, err := cfg.ResponseType()
			if err != nil {
				return err
			}

			points, err := sim.Simulate(dt, rt, cfg.Response.TEnd)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				sf.logger.Warn("system has no causal realization", "name", cfg.Name)
			}
			sf.logger.Info("response", "type", rt, "points", len(points))

			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				return render.WriteResponseCSV(out, points)
			case "plot":
				caption := fmt.Sprintf("%s response of %s", rt, cfg.Name)
				_, err := fmt.Fprintln(out, render.PlotResponse(points, caption, render.DefaultPlotOptions))
				return err
			default:
				return render.WriteResponseTable(out, points)
			}
		},
	}

	f := cmd.Flags()
	f.StringVarP(&responseType, "type", "t", "step", "response type (impulse, step, ramp)")
	f.Float64Var(&tEnd, "t-end", 0, "end time in seconds")
	addFormatFlag(cmd, &format, "table", "csv", "plot")

	return cmd
}
