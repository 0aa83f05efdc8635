// Package config loads system descriptions for the command-line and HTTP
// front ends. A description names one transfer function, by coefficients,
// by poles and zeroes, or as a Butterworth prototype, together with the
// sample time and the analysis settings to apply to it.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-lti/internal/polyroot"
	"github.com/cwbudde/algo-lti/lti/bilinear"
	"github.com/cwbudde/algo-lti/lti/design"
	"github.com/cwbudde/algo-lti/lti/sim"
	"github.com/cwbudde/algo-lti/lti/tf"
)

const (
	DefaultSampleTime = 0.01
	DefaultStartExp   = -2.0
	DefaultStopExp    = 3.0
	DefaultPoints     = 200
	DefaultResponse   = "step"
	DefaultTEnd       = 10.0

	// MaxBodePoints caps the frequency grid a single request may ask for.
	MaxBodePoints = 10000

	// MaxBodeExp bounds |start_exp| and |stop_exp| so that every grid
	// frequency 10^exp stays finite and nonzero.
	MaxBodeExp = 300.0
)

var (
	ErrNoSystem        = errors.New("config: no system given")
	ErrAmbiguousSystem = errors.New("config: more than one system source given")
	ErrInvalid         = errors.New("config: invalid value")
)

type Config struct {
	Name     string         `yaml:"name,omitempty"`
	System   SystemConfig   `yaml:"system"`
	Discrete DiscreteConfig `yaml:"discrete"`
	Bode     BodeConfig     `yaml:"bode"`
	Response ResponseConfig `yaml:"response"`
}

// SystemConfig holds exactly one of: Numerator and Denominator, Poles
// (with optional Zeroes), or Butterworth.
type SystemConfig struct {
	Numerator   []float64          `yaml:"numerator,omitempty"`
	Denominator []float64          `yaml:"denominator,omitempty"`
	Poles       []Root             `yaml:"poles,omitempty"`
	Zeroes      []Root             `yaml:"zeroes,omitempty"`
	Butterworth *ButterworthConfig `yaml:"butterworth,omitempty"`
}

// Root is a complex root written as {re, im}.
type Root struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im,omitempty"`
}

type ButterworthConfig struct {
	Order  int     `yaml:"order"`
	Cutoff float64 `yaml:"cutoff"`
}

type DiscreteConfig struct {
	SampleTime float64 `yaml:"sample_time"`
	// Prewarp is the bilinear pre-warp frequency in rad/s; zero disables
	// it. Butterworth systems pre-warp at their cutoff when it is zero.
	Prewarp float64 `yaml:"prewarp,omitempty"`
}

type BodeConfig struct {
	StartExp float64 `yaml:"start_exp"`
	StopExp  float64 `yaml:"stop_exp"`
	Points   int     `yaml:"points"`
	Unwrap   bool    `yaml:"unwrap,omitempty"`
}

type ResponseConfig struct {
	Type string  `yaml:"type"`
	TEnd float64 `yaml:"t_end"`
}

// DefaultConfig returns the analysis defaults with an empty system.
func DefaultConfig() *Config {
	return &Config{
		Name: "system",
		Discrete: DiscreteConfig{
			SampleTime: DefaultSampleTime,
		},
		Bode: BodeConfig{
			StartExp: DefaultStartExp,
			StopExp:  DefaultStopExp,
			Points:   DefaultPoints,
		},
		Response: ResponseConfig{
			Type: DefaultResponse,
			TEnd: DefaultTEnd,
		},
	}
}

// Load reads a YAML description from path on top of [DefaultConfig].
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML description on top of [DefaultConfig].
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Decode fills a [DefaultConfig] from a generic document such as a decoded
// JSON request body. Keys follow the YAML field names.
func Decode(doc map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "yaml",
		Result:      cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that exactly one system source is present and that
// every analysis setting is usable.
func (c *Config) Validate() error {
	sources := 0
	s := c.System
	if len(s.Numerator) > 0 || len(s.Denominator) > 0 {
		sources++
		if len(s.Numerator) == 0 || len(s.Denominator) == 0 {
			return fmt.Errorf("%w: numerator and denominator must both be set", ErrInvalid)
		}
		if !finite(s.Numerator...) || !finite(s.Denominator...) {
			return fmt.Errorf("%w: coefficients must be finite", ErrInvalid)
		}
	}
	if len(s.Poles) > 0 || len(s.Zeroes) > 0 {
		sources++
		if err := validateRoots("poles", s.Poles); err != nil {
			return err
		}
		if err := validateRoots("zeroes", s.Zeroes); err != nil {
			return err
		}
	}
	if s.Butterworth != nil {
		sources++
	}

	switch {
	case sources == 0:
		return ErrNoSystem
	case sources > 1:
		return ErrAmbiguousSystem
	}

	if !(c.Discrete.SampleTime > 0) || !finite(c.Discrete.SampleTime) {
		return fmt.Errorf("%w: sample_time %v", ErrInvalid, c.Discrete.SampleTime)
	}
	if c.Discrete.Prewarp < 0 || !finite(c.Discrete.Prewarp) {
		return fmt.Errorf("%w: prewarp %v", ErrInvalid, c.Discrete.Prewarp)
	}
	if c.Bode.Points < 1 || c.Bode.Points > MaxBodePoints {
		return fmt.Errorf("%w: bode points %d not in [1,%d]", ErrInvalid, c.Bode.Points, MaxBodePoints)
	}
	if !finite(c.Bode.StartExp, c.Bode.StopExp) {
		return fmt.Errorf("%w: bode exponents must be finite", ErrInvalid)
	}
	if math.Abs(c.Bode.StartExp) > MaxBodeExp || math.Abs(c.Bode.StopExp) > MaxBodeExp {
		return fmt.Errorf("%w: bode exponents must lie in [-%g,%g]", ErrInvalid, MaxBodeExp, MaxBodeExp)
	}
	if _, err := sim.ParseResponseType(c.Response.Type); err != nil {
		return err
	}
	if !finite(c.Response.TEnd) {
		return fmt.Errorf("%w: t_end %v", ErrInvalid, c.Response.TEnd)
	}

	return nil
}

func validateRoots(name string, roots []Root) error {
	values := make([]complex128, len(roots))
	for i, r := range roots {
		if !finite(r.Re, r.Im) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
		}
		values[i] = complex(r.Re, r.Im)
	}
	if !polyroot.ConjugateClosed(values, polyroot.ConjugateTol) {
		return fmt.Errorf("%w: %s are not closed under conjugation", ErrInvalid, name)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Continuous validates c and builds its s-domain system.
func (c *Config) Continuous() (*tf.Continuous, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := c.System
	switch {
	case s.Butterworth != nil:
		return design.ButterworthLowpass(s.Butterworth.Order, s.Butterworth.Cutoff)
	case len(s.Poles) > 0 || len(s.Zeroes) > 0:
		return tf.ContinuousFromPolesZeroes(complexRoots(s.Poles), complexRoots(s.Zeroes)), nil
	default:
		return tf.NewContinuous(s.Numerator, s.Denominator)
	}
}

// Build validates c and returns the continuous system and its bilinear
// discretization.
func (c *Config) Build() (*tf.Continuous, *tf.Discrete, error) {
	ct, err := c.Continuous()
	if err != nil {
		return nil, nil, err
	}

	var opts []bilinear.Option
	switch {
	case c.Discrete.Prewarp > 0:
		opts = append(opts, bilinear.WithPrewarp(c.Discrete.Prewarp))
	case c.System.Butterworth != nil:
		opts = append(opts, bilinear.WithPrewarp(c.System.Butterworth.Cutoff))
	}

	dt, err := tf.DiscreteFromContinuous(ct, c.Discrete.SampleTime, opts...)
	if err != nil {
		return nil, nil, err
	}

	return ct, dt, nil
}

// ResponseType returns the parsed response type.
func (c *Config) ResponseType() (sim.ResponseType, error) {
	return sim.ParseResponseType(c.Response.Type)
}

func complexRoots(roots []Root) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = complex(r.Re, r.Im)
	}
	return out
}
