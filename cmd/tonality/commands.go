package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tonality/pitch"
	"github.com/katalvlaran/tonality/server"
	"github.com/katalvlaran/tonality/tonality"
)

func (a *app) distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance FROM TO",
		Short: "Print the modulation distance between two keys",
		Example: `  tonality distance C a
  tonality distance C e --relative 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parsePair(args)
			if err != nil {
				return err
			}
			d, err := a.calc.Distance(from, to, a.weights)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), server.NewDistanceResponse(from, to, d, a.weights.String()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s : %s\n", from, to, formatDistance(d))

			return nil
		},
	}
}

func (a *app) pathCmd() *cobra.Command {
	var (
		all      bool
		maxPaths int
		index    int
	)

	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Print a minimum-cost modulation path between two keys",
		Long: `Print a minimum-cost modulation path between two keys, one hop per line.

With --all every tied minimum path is printed (bounded by --max-paths);
--index picks one of them in enumeration order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parsePair(args)
			if err != nil {
				return err
			}
			if maxPaths < 0 {
				return fmt.Errorf("--max-paths must be >= 0, got %d", maxPaths)
			}
			if index < 0 {
				return fmt.Errorf("--index must be >= 0, got %d", index)
			}
			var opts []tonality.PathOption
			if cmd.Flags().Changed("max-paths") {
				opts = append(opts, tonality.WithMaxPaths(maxPaths))
			}
			set, err := a.calc.Paths(from, to, a.weights, opts...)
			if err != nil {
				return err
			}
			if !all && len(set.Paths) > 0 {
				if index >= len(set.Paths) {
					return fmt.Errorf("--index %d out of range: %d shortest paths", index, len(set.Paths))
				}
				set.Paths = set.Paths[index : index+1]
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return writeJSON(out, server.NewPathsResponse(from, to, set))
			}
			if len(set.Paths) == 0 {
				fmt.Fprintf(out, "%s -> %s : unreachable\n", from, to)
				return nil
			}
			count := strconv.Itoa(len(set.Paths))
			if set.Truncated {
				count = "more than " + count
			}
			for i, p := range set.Paths {
				if all {
					fmt.Fprintf(out, "# path %d of %s, total %s\n", i+1, count, formatDistance(p.Total))
				}
				fmt.Fprintln(out, p.String())
			}
			if all && set.Truncated {
				fmt.Fprintf(out, "# truncated at %d paths; raise --max-paths to see more\n", len(set.Paths))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print every tied minimum path")
	cmd.Flags().IntVar(&maxPaths, "max-paths", 0, "Bound on enumerated paths (0 = unbounded; default from config)")
	cmd.Flags().IntVar(&index, "index", 0, "Which tied path to print without --all")

	return cmd
}

func (a *app) tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table FROM",
		Short: "Print the distance and one path from a key to every key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := pitch.ParseKey(args[0])
			if err != nil {
				return err
			}
			rows, err := a.calc.Table(from, a.weights)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), server.NewTableResponse(from, rows))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tDISTANCE\tPATH")
			for _, r := range rows {
				names := make([]string, len(r.Path))
				for i, k := range r.Path {
					names[i] = k.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, formatDistance(r.Distance), strings.Join(names, " "))
			}

			return tw.Flush()
		},
	}
}

func (a *app) neighborsCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "neighbors FROM",
		Short: "List keys within a number of modulation steps",
		Long: `List the keys reachable from FROM in at most --steps modulations
(0 = no limit), fewest steps first. Weights only matter for disabled classes,
which are never followed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := pitch.ParseKey(args[0])
			if err != nil {
				return err
			}
			if steps < 0 {
				return fmt.Errorf("--steps must be >= 0, got %d", steps)
			}
			hood, err := a.calc.Neighborhood(cmd.Context(), from, a.weights, steps)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), server.NewNeighborhoodResponse(from, hood))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tSTEPS\tVIA")
			for _, s := range hood {
				names := make([]string, len(s.Via))
				for i, k := range s.Via {
					names[i] = k.String()
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Key, s.Steps, strings.Join(names, " "))
			}

			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Maximum number of modulations (0 = no limit)")

	return cmd
}

func (a *app) tensorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tensor",
		Short: "Print the 7x12x4 distance tensor",
		Long: `Print the distance tensor: one grid per mode transition, rows are
diatonic steps and columns are chromatic steps of the interval between keys.
Unreachable cells print as "-".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.calc.Tensor(a.weights)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), server.NewTensorResponse(t))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', tabwriter.AlignRight)
			for c := tonality.Class(0); c < tonality.ClassCount; c++ {
				fmt.Fprintf(tw, "%s\n", c)
				for d := 0; d < pitch.DiatonicSteps; d++ {
					cells := make([]string, pitch.ChromaticSteps)
					for ch := range cells {
						v := t[d][ch][c]
						if math.IsInf(v, 1) {
							cells[ch] = "-"
						} else {
							cells[ch] = strconv.FormatFloat(v, 'f', 2, 64)
						}
					}
					fmt.Fprintf(tw, "%d\t%s\t\n", d, strings.Join(cells, "\t"))
				}
				fmt.Fprintln(tw)
			}

			return tw.Flush()
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the tensor against all-pairs distances of the full graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tonality.VerifyInvariance(a.weights); err != nil {
				return err
			}
			n := len(pitch.AllKeys())
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d key pairs agree with the tensor (%s)\n", n*n, a.weights)

			return nil
		},
	}
}

func (a *app) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every key name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := pitch.SortedKeyNames()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), server.KeysResponse{Keys: names})
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))

			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP query service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}

			a.reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			h := server.NewHandlers(a.calc, a.weights, a.logger)
			router := server.NewRouter(h, a.reg, a.reg)

			// Warm the cache for the configured weights before taking traffic.
			if _, err := a.calc.Tensor(a.weights); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, router, server.Options{
				Addr:            sc.Addr,
				ReadTimeout:     sc.ReadTimeout,
				WriteTimeout:    sc.WriteTimeout,
				ShutdownTimeout: sc.ShutdownTimeout,
			}, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func parsePair(args []string) (pitch.Key, pitch.Key, error) {
	from, err := pitch.ParseKey(args[0])
	if err != nil {
		return pitch.Key{}, pitch.Key{}, err
	}
	to, err := pitch.ParseKey(args[1])
	if err != nil {
		return pitch.Key{}, pitch.Key{}, err
	}

	return from, to, nil
}

func formatDistance(d float64) string {
	if math.IsInf(d, 1) {
		return "unreachable"
	}

	return strconv.FormatFloat(d, 'g', 6, 64)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
