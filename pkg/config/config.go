// Package config loads chart configuration from TOML or YAML files with
// environment overrides.
//
// A configuration names the canvas, curve and throttle settings, metadata
// for individual dimensions, and an optional initial view: visible
// dimensions, axis order and range brushes in domain units.
//
//	curve = "monotone"
//	throttle = "100ms"
//	order = ["price", "power", "name"]
//
//	[canvas]
//	width = 1200
//	height = 600
//
//	[[dimension]]
//	name = "price"
//	unit = "EUR"
//	objective = "min"
//	color = "#d95f02"
//
//	[[brush]]
//	name = "power"
//	lo = 100
//	hi = 150
//
// Settings are layered: built-in defaults, then PARCOORDS_* environment
// variables, then the file. CLI flags are applied last by the caller.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/dimension"
	"github.com/matzehuels/parcoords/pkg/errors"
	"github.com/matzehuels/parcoords/pkg/geom"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "parcoords"

// Config is the decoded configuration file.
type Config struct {
	Canvas   Canvas        `toml:"canvas" yaml:"canvas"`
	Curve    string        `toml:"curve" yaml:"curve"`
	Throttle time.Duration `toml:"throttle" yaml:"throttle"`
	TopDown  bool          `toml:"top_down" yaml:"top_down"`

	Order   []string `toml:"order" yaml:"order"`
	Visible []string `toml:"visible" yaml:"visible"`

	Dimensions []dimension.Metadata `toml:"dimension" yaml:"dimensions"`
	Brushes    []Brush              `toml:"brush" yaml:"brushes"`
}

// Canvas is the output size in pixels.
type Canvas struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Brush is an initial range brush in domain units.
type Brush struct {
	Name string  `toml:"name" yaml:"name"`
	Lo   float64 `toml:"lo" yaml:"lo"`
	Hi   float64 `toml:"hi" yaml:"hi"`
}

// Env holds the environment overrides, read with the PARCOORDS_ prefix.
type Env struct {
	Width    float64        `envconfig:"WIDTH"`
	Height   float64        `envconfig:"HEIGHT"`
	Curve    string         `envconfig:"CURVE"`
	Throttle *time.Duration `envconfig:"THROTTLE"` // nil when unset; 0 is a valid interval
}

// Default returns the configuration used when no file is given, with
// environment overrides applied.
func Default() (*Config, error) {
	opts := chart.DefaultOptions()
	cfg := &Config{
		Canvas:   Canvas{Width: opts.Width, Height: opts.Height},
		Curve:    opts.Curve.String(),
		Throttle: opts.ThrottleInterval,
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "environment")
	}
	if env.Width > 0 {
		cfg.Canvas.Width = env.Width
	}
	if env.Height > 0 {
		cfg.Canvas.Height = env.Height
	}
	if env.Curve != "" {
		cfg.Curve = env.Curve
	}
	if env.Throttle != nil {
		cfg.Throttle = *env.Throttle
	}
	return cfg, nil
}

// Load reads the file at path over [Default]. The format is chosen by
// extension: .toml, .yaml or .yml. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if err := errors.ValidateExtension(path, ".toml", ".yaml", ".yml"); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, err
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		err = decodeTOML(data, cfg)
	} else {
		err = decodeYAML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(names, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return nil
}

// Validate checks the values that decoding cannot.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Throttle < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "throttle must not be negative")
	}
	if _, err := geom.ParseCurve(c.Curve); err != nil {
		return err
	}
	for _, b := range c.Brushes {
		if err := errors.ValidateDimensionName(b.Name); err != nil {
			return fmt.Errorf("brush: %w", err)
		}
	}
	return nil
}

// ChartOptions returns chart options for this configuration.
func (c *Config) ChartOptions() (chart.Options, error) {
	curve, err := geom.ParseCurve(c.Curve)
	if err != nil {
		return chart.Options{}, err
	}
	opts := chart.DefaultOptions()
	opts.Width = c.Canvas.Width
	opts.Height = c.Canvas.Height
	opts.Curve = curve
	opts.ThrottleInterval = c.Throttle
	opts.TopDown = c.TopDown
	return opts, nil
}

// Apply sets up the initial view on a chart that already holds data:
// visible dimensions, then axis order, then brushes.
func (c *Config) Apply(ch *chart.Chart) error {
	if len(c.Visible) > 0 {
		if err := ch.SetVisibleDimensions(c.Visible); err != nil {
			return fmt.Errorf("visible: %w", err)
		}
	}
	if len(c.Order) > 0 {
		order := c.Order
		// A partial order leads; the remaining axes follow in their current order.
		if current := ch.Order(); len(order) < len(current) {
			order = slices.Clone(order)
			for _, name := range current {
				if !slices.Contains(order, name) {
					order = append(order, name)
				}
			}
		}
		if err := ch.SetAxisOrder(order); err != nil {
			return fmt.Errorf("order: %w", err)
		}
	}
	for _, b := range c.Brushes {
		if _, err := ch.SetRangeBrushValues(b.Name, b.Lo, b.Hi); err != nil {
			return fmt.Errorf("brush %s: %w", b.Name, err)
		}
	}
	return nil
}
