package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lti/internal/render"
)

func newInfoCmd(sf *systemFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print coefficients, poles, zeroes and stability",
		Long: `Prints the continuous system and its bilinear discretization: the
coefficient fraction, order, DC gain, stability and root locations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.load(cmd)
			if err != nil {
				return err
			}

			ct, dt, err := cfg.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := render.WriteInfo(out, cfg.Name, ct); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			return render.WriteInfo(out, cfg.Name, dt)
		},
	}
}
