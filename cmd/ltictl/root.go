package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lti/internal/config"
	"github.com/cwbudde/algo-lti/internal/logging"
)

// systemFlags describe a system on the command line. Flags that were set
// explicitly override the values loaded from --config.
type systemFlags struct {
	configFile string
	name       string
	num, den   []float64
	order      int
	cutoff     float64
	sampleTime float64
	prewarp    float64
	logLevel   string
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	sf := &systemFlags{}

	rootCmd := &cobra.Command{
		Use:          "ltictl",
		Short:        "Analyze linear time-invariant transfer functions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(sf.logLevel)
			if err != nil {
				return err
			}
			sf.logger = logging.New(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&sf.configFile, "config", "c", "", "system description file (yaml)")
	pf.StringVar(&sf.name, "name", "", "system name")
	pf.Float64SliceVar(&sf.num, "num", nil, "numerator coefficients, highest power first")
	pf.Float64SliceVar(&sf.den, "den", nil, "denominator coefficients, highest power first")
	pf.IntVar(&sf.order, "butterworth-order", 0, "Butterworth lowpass order (with --cutoff)")
	pf.Float64Var(&sf.cutoff, "cutoff", 1, "Butterworth cutoff in rad/s")
	pf.Float64Var(&sf.sampleTime, "ts", config.DefaultSampleTime, "sample time in seconds for discretization")
	pf.Float64Var(&sf.prewarp, "prewarp", 0, "bilinear pre-warp frequency in rad/s (0 disables)")
	pf.StringVar(&sf.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInfoCmd(sf),
		newBodeCmd(sf),
		newResponseCmd(sf),
		newServeCmd(sf),
	)

	return rootCmd
}

// load builds the configuration for cmd: the --config file (or defaults)
// overlaid with every explicitly set system flag.
func (sf *systemFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if sf.configFile != "" {
		loaded, err := config.Load(sf.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		sf.logger.Debug("loaded config", "path", sf.configFile, "name", cfg.Name)
	}

	flags := cmd.Flags()
	if (flags.Changed("num") || flags.Changed("den")) && flags.Changed("butterworth-order") {
		return nil, fmt.Errorf("%w: use either --num/--den or --butterworth-order", config.ErrAmbiguousSystem)
	}

	if flags.Changed("name") {
		cfg.Name = sf.name
	}
	if flags.Changed("num") || flags.Changed("den") {
		cfg.System = config.SystemConfig{Numerator: sf.num, Denominator: sf.den}
	}
	if flags.Changed("butterworth-order") {
		cfg.System = config.SystemConfig{
			Butterworth: &config.ButterworthConfig{Order: sf.order, Cutoff: sf.cutoff},
		}
	}
	if flags.Changed("ts") {
		cfg.Discrete.SampleTime = sf.sampleTime
	}
	if flags.Changed("prewarp") {
		cfg.Discrete.Prewarp = sf.prewarp
	}

	return cfg, nil
}

// addFormatFlag registers --format with the given choices, the first being
// the default.
func addFormatFlag(cmd *cobra.Command, target *string, choices ...string) {
	cmd.Flags().StringVarP(target, "format", "f", choices[0], fmt.Sprintf("output format %v", choices))
}

func checkFormat(format string, choices ...string) error {
	for _, c := range choices {
		if format == c {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %v)", format, choices)
}
