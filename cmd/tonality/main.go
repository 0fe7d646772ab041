// Package main provides the tonality binary: modulation distances and paths
// between musical keys from the command line, plus a JSON query service.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tonality/config"
	"github.com/katalvlaran/tonality/modulation"
	"github.com/katalvlaran/tonality/tonality"
)

const (
	version = "0.1.0"
	appName = "tonality"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries flag values and the state resolved from them before each command.
type app struct {
	configPath string
	neighbor   float64
	relative   float64
	parallel   float64
	enharmonic float64
	dominant   float64
	disable    []string
	logLevel   string
	logFormat  string
	jsonOut    bool

	cfg     *config.Config
	weights modulation.Weights
	logger  *slog.Logger
	reg     *prometheus.Registry
	calc    *tonality.Calculator
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := modulation.DefaultWeights()

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Modulation distances between musical keys",
		Long: `tonality measures how far apart two keys are when modulating between them.

Keys are written as a letter with accidentals; the letter's case selects the
mode: "C#" is C-sharp major, "eb" is E-flat minor. Each modulation class
(neighbor, relative, parallel, enharmonic, dominant) has a weight; a
distance is the smallest total weight of a chain of modulations.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.resolve,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	pf.Float64Var(&a.neighbor, "neighbor", defaults.Neighbor, "Weight of neighbor (fifth) modulations")
	pf.Float64Var(&a.relative, "relative", defaults.Relative, "Weight of relative major/minor modulations")
	pf.Float64Var(&a.parallel, "parallel", defaults.Parallel, "Weight of parallel major/minor modulations")
	pf.Float64Var(&a.enharmonic, "enharmonic", defaults.Enharmonic, "Weight of enharmonic respellings")
	pf.Float64Var(&a.dominant, "dominant", defaults.Dominant, "Weight of minor-to-dominant modulations")
	pf.StringSliceVar(&a.disable, "disable", nil, "Modulation classes to disable (comma separated)")
	pf.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "text", "Log format (text, json)")
	pf.BoolVar(&a.jsonOut, "json", false, "Write results as JSON")

	cmd.AddCommand(
		a.distanceCmd(),
		a.pathCmd(),
		a.tableCmd(),
		a.neighborsCmd(),
		a.tensorCmd(),
		a.verifyCmd(),
		a.keysCmd(),
		a.configCmd(),
		a.serveCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
			},
		},
	)

	return cmd
}

// resolve loads the config file, lets explicitly set flags win over it and
// builds the logger and the shared Calculator.
func (a *app) resolve(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name string
		dst  *float64
		v    float64
	}{
		{"neighbor", &cfg.Weights.Neighbor, a.neighbor},
		{"relative", &cfg.Weights.Relative, a.relative},
		{"parallel", &cfg.Weights.Parallel, a.parallel},
		{"enharmonic", &cfg.Weights.Enharmonic, a.enharmonic},
		{"dominant", &cfg.Weights.Dominant, a.dominant},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dst = o.v
		}
	}
	if flags.Changed("disable") {
		cfg.Disabled = append(cfg.Disabled, a.disable...)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(a.logLevel)
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = strings.ToLower(a.logFormat)
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if a.weights, err = cfg.ModulationWeights(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
	a.reg = prometheus.NewRegistry()
	a.calc = tonality.NewCalculator(
		tonality.WithLogger(a.logger),
		tonality.WithRegisterer(a.reg),
		tonality.WithPathLimit(cfg.Paths.Max),
	)
	a.logger.Debug("configuration resolved", "weights", a.weights.String(), "config", a.configPath)

	return nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
