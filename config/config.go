// Package config loads and validates tonality settings from YAML.
//
// A file only needs the fields it changes; everything else keeps its default.
// Weights accept ".inf" to disable a class, as does listing it under disabled.
//
//	weights:
//	  neighbor: 1
//	  relative: 0.7
//	  parallel: 1.3
//	  enharmonic: 0.01
//	  dominant: 1.2
//	disabled: [dominant]
//	paths:
//	  max: 256
//	server:
//	  addr: localhost:8080
//	log:
//	  level: info
//	  format: text
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/tonality"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete tonality configuration.
type Config struct {
	Weights  WeightsConfig `yaml:"weights"`
	Disabled []string      `yaml:"disabled" validate:"dive,modkind"`
	Paths    PathsConfig   `yaml:"paths"`
	Server   ServerConfig  `yaml:"server"`
	Log      LogConfig     `yaml:"log"`
}

// WeightsConfig holds one cost per modulation class. .inf disables a class.
type WeightsConfig struct {
	Neighbor   float64 `yaml:"neighbor" validate:"gte=0"`
	Relative   float64 `yaml:"relative" validate:"gte=0"`
	Parallel   float64 `yaml:"parallel" validate:"gte=0"`
	Enharmonic float64 `yaml:"enharmonic" validate:"gte=0"`
	Dominant   float64 `yaml:"dominant" validate:"gte=0"`
}

// PathsConfig bounds all-shortest-path enumeration.
type PathsConfig struct {
	// Max is the default number of paths returned per query (0 = unbounded).
	Max int `yaml:"max" validate:"gte=0,lte=100000"`
}

// ServerConfig configures the HTTP query service.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("modkind", validateKind)
}

// validateKind accepts any name modulation.ParseKind understands.
func validateKind(fl validator.FieldLevel) bool {
	_, err := modulation.ParseKind(fl.Field().String())

	return err == nil
}

// Default returns the built-in configuration.
func Default() *Config {
	w := modulation.DefaultWeights()

	return &Config{
		Weights: WeightsConfig{
			Neighbor:   w.Neighbor,
			Relative:   w.Relative,
			Parallel:   w.Parallel,
			Enharmonic: w.Enharmonic,
			Dominant:   w.Dominant,
		},
		Paths: PathsConfig{Max: tonality.DefaultMaxPaths},
		Server: ServerConfig{
			Addr:            "localhost:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path and overlays it on Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown fields
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// ModulationWeights converts the weights section, applying the disabled list.
func (c *Config) ModulationWeights() (modulation.Weights, error) {
	w := modulation.Weights{
		Neighbor:   c.Weights.Neighbor,
		Relative:   c.Weights.Relative,
		Parallel:   c.Weights.Parallel,
		Enharmonic: c.Weights.Enharmonic,
		Dominant:   c.Weights.Dominant,
	}
	for _, name := range c.Disabled {
		k, err := modulation.ParseKind(name)
		if err != nil {
			return modulation.Weights{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		w = w.Disable(k)
	}
	if err := w.Validate(); err != nil {
		return modulation.Weights{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return w, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
