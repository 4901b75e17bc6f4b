package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/recmat/internal/analysis"
	"github.com/san-kum/recmat/internal/config"
	"github.com/san-kum/recmat/internal/pipeline"
	"github.com/san-kum/recmat/internal/spectrum"
	"github.com/san-kum/recmat/internal/storage"
	"github.com/san-kum/recmat/internal/tui"
	"github.com/san-kum/recmat/internal/viz"
	"github.com/spf13/cobra"
)

var (
	generations    int
	eigenDir       string
	matrixDir      string
	graphDir       string
	verifySymmetry bool
	crossCheck     bool
	abortOnError   bool
	bins           int
	// Config file
	configFile string
	// Preset name
	preset string
)

// main registers the commands and runs the full reference pass when no
// subcommand is given. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "recmat",
		Short:         "recursive block-matrix family and spectrum lab",
		RunE:          runFamily,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&eigenDir, "eigen-dir", config.DefaultEigenDir, "eigenvalue output directory")
	rootCmd.PersistentFlags().StringVar(&matrixDir, "matrix-dir", config.DefaultMatrixDir, "matrix output directory")
	rootCmd.PersistentFlags().StringVar(&graphDir, "graph-dir", config.DefaultGraphDir, "edge list output directory")
	rootCmd.PersistentFlags().IntVarP(&generations, "generations", "k", config.DefaultGenerations, "number of generations")
	rootCmd.PersistentFlags().BoolVar(&verifySymmetry, "verify-symmetry", true, "check every matrix is symmetric before solving")
	rootCmd.PersistentFlags().BoolVar(&crossCheck, "cross-check", false, "compare dense matrices with the matrix-free operator")
	rootCmd.PersistentFlags().BoolVar(&abortOnError, "abort-on-error", false, "stop at the first failed generation")
	rootCmd.PersistentFlags().IntVar(&bins, "bins", config.DefaultHistogramBins, "histogram subintervals")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "build, solve and export every generation",
		Args:  cobra.NoArgs,
		RunE:  runFamily,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run with a live progress view",
		Args:  cobra.NoArgs,
		RunE:  watchFamily,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "show the last run summary",
		Args:  cobra.NoArgs,
		RunE:  showSummary,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [generation]",
		Short: "plot a stored spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSpectrum,
	}

	gapCmd := &cobra.Command{
		Use:   "gap",
		Short: "spectral gap of every stored spectrum",
		Args:  cobra.NoArgs,
		RunE:  spectralGap,
	}

	histCmd := &cobra.Command{
		Use:   "hist [generation]",
		Short: "histogram of normalized eigenvalues",
		Args:  cobra.ExactArgs(1),
		RunE:  histogram,
	}

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "export edge lists for stored matrices",
		Args:  cobra.NoArgs,
		RunE:  exportGraphs,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGENERATIONS\tSYMMETRY\tCROSS-CHECK\tABORT")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%t\t%t\t%t\n", name, p.Generations, p.VerifySymmetry, p.CrossCheck, p.AbortOnError)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, watchCmd, summaryCmd, plotCmd, gapCmd, histCmd, graphCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusFail.Render("error:"), err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg = p
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// flags override config
	flags := cmd.Flags()
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("eigen-dir") {
		cfg.Output.EigenDir = eigenDir
	}
	if flags.Changed("matrix-dir") {
		cfg.Output.MatrixDir = matrixDir
	}
	if flags.Changed("graph-dir") {
		cfg.Output.GraphDir = graphDir
	}
	if flags.Changed("verify-symmetry") {
		cfg.VerifySymmetry = verifySymmetry
	}
	if flags.Changed("cross-check") {
		cfg.CrossCheck = crossCheck
	}
	if flags.Changed("abort-on-error") {
		cfg.AbortOnError = abortOnError
	}
	if flags.Changed("bins") {
		cfg.HistogramBins = bins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveLayout(cmd *cobra.Command) (*config.Config, storage.Layout, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, storage.Layout{}, err
	}
	return cfg, storage.Layout{
		EigenDir:  cfg.Output.EigenDir,
		MatrixDir: cfg.Output.MatrixDir,
		GraphDir:  cfg.Output.GraphDir,
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runFamily(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := pipeline.FromConfig(cfg, spectrum.NewSymmetricSolver())
	if err != nil {
		return err
	}
	runner.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, stop := signalContext()
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), viz.Title.Render(fmt.Sprintf("building %d generations...", cfg.Generations)))
	start := time.Now()

	report, err := runner.Run(ctx)
	if report != nil {
		printReport(cmd.OutOrStdout(), report, time.Since(start))
	}
	return err
}

func watchFamily(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := pipeline.FromConfig(cfg, spectrum.NewSymmetricSolver())
	if err != nil {
		return err
	}
	runner.SetOutput(io.Discard, io.Discard)

	ctx, stop := signalContext()
	defer stop()

	report, err := tui.RunWatch(ctx, runner)
	if report != nil {
		printReport(cmd.OutOrStdout(), report, report.Finished.Sub(report.Started))
	}
	return err
}

func printReport(out io.Writer, report *pipeline.Report, elapsed time.Duration) {
	failed := report.Failed()
	lines := []string{
		fmt.Sprintf("completed %d generations in %v", len(report.Results), elapsed.Truncate(time.Millisecond)),
	}
	for _, res := range report.Results {
		lines = append(lines, fmt.Sprintf("  M_%-3d %6d  %s", res.Generation, res.Dim, viz.Status(res.Err != nil, len(res.Skipped))))
	}
	if len(failed) == 0 {
		lines = append(lines, viz.StatusOK.Render("all spectra computed"))
	} else {
		lines = append(lines, viz.StatusFail.Render(fmt.Sprintf("%d generation(s) without spectrum:", len(failed))))
		for _, res := range failed {
			lines = append(lines, "  "+res.Err.Error())
		}
	}
	fmt.Fprintln(out, viz.Panel.Render(strings.Join(lines, "\n")))
}

func showSummary(cmd *cobra.Command, args []string) error {
	_, layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}
	s, err := storage.LoadSummary(layout.SummaryPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", viz.Subtle.Render("solver:"), s.Solver)
	fmt.Fprintf(out, "%s %s\n", viz.Subtle.Render("started:"), s.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "%s %v\n\n", viz.Subtle.Render("took:"), s.Finished.Sub(s.Started).Truncate(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GEN\tDIM\tMIN\tMAX\tTIME\tSTATUS")
	for _, r := range s.Records {
		status := "ok"
		switch {
		case r.Error != "":
			status = r.Error
		case len(r.Skipped) > 0:
			status = fmt.Sprintf("%d file(s) skipped", len(r.Skipped))
		}
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.3fs\t%s\n", r.Generation, r.Dim, r.Min, r.Max, r.Elapsed, status)
	}
	return w.Flush()
}

func parseGeneration(arg string) (int, error) {
	gen, err := strconv.Atoi(arg)
	if err != nil || gen < 1 {
		return 0, fmt.Errorf("invalid generation: %s", arg)
	}
	return gen, nil
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	gen, err := parseGeneration(args[0])
	if err != nil {
		return err
	}
	_, layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}
	values, err := storage.ReadEigenvalues(layout.EigenvaluePath(gen))
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no eigenvalues stored for generation %d", gen)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.PlotSpectrum(gen, values))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Metric("min", values[0]))
	fmt.Fprintln(out, viz.Metric("max", values[len(values)-1]))
	return nil
}

// storedGenerations lists the generations with an eigenvalue file, in order.
func storedGenerations(layout storage.Layout, limit int) []int {
	var gens []int
	for gen := 1; gen <= limit; gen++ {
		if _, err := os.Stat(layout.EigenvaluePath(gen)); err == nil {
			gens = append(gens, gen)
		}
	}
	return gens
}

func spectralGap(cmd *cobra.Command, args []string) error {
	_, layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}
	gens := storedGenerations(layout, config.MaxGenerations)
	if len(gens) == 0 {
		return fmt.Errorf("no spectra found in %s", layout.EigenDir)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Metric("2√2", analysis.RamanujanBound))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GEN\tDIM\tλ1\tλ2\tGAP\tλ2 < 2√2")
	for _, gen := range gens {
		values, err := storage.ReadEigenvalues(layout.EigenvaluePath(gen))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, skipping\n", err)
			continue
		}
		gap, err := analysis.SpectralGap(values)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: generation %d: %v, skipping\n", gen, err)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.15f\t%.15f\t%.15f\t%t\n", gen, len(values), gap.Largest, gap.Second, gap.Gap, gap.BelowBound)
	}
	return w.Flush()
}

func histogram(cmd *cobra.Command, args []string) error {
	gen, err := parseGeneration(args[0])
	if err != nil {
		return err
	}
	cfg, layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}
	values, err := storage.ReadEigenvalues(layout.EigenvaluePath(gen))
	if err != nil {
		return err
	}
	h, err := analysis.NormalizedHistogram(values, cfg.HistogramBins)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.PlotHistogram(gen, h))
	return nil
}

func exportGraphs(cmd *cobra.Command, args []string) error {
	_, layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(layout.MatrixDir, "matrix_m*.csv"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no matrices found in %s", layout.MatrixDir)
	}

	exported := 0
	for gen := 2; gen <= config.MaxGenerations; gen++ {
		m, err := storage.ReadMatrix(layout.MatrixPath(gen))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, skipping\n", err)
			continue
		}
		edges, err := analysis.Edges(m)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: generation %d: %v, skipping\n", gen, err)
			continue
		}
		path := layout.EdgesPath(gen)
		if err := storage.WriteEdges(path, edges); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v, skipping file\n", err)
			continue
		}
		exported++
		fmt.Fprintf(cmd.OutOrStdout(), "Graph saved to %s (%d edges)\n", path, len(edges))
	}
	if exported == 0 {
		return fmt.Errorf("no edge lists written")
	}
	return nil
}
