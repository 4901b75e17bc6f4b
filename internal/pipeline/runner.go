// Package pipeline runs the build, solve and export passes over a family.
//
// Construction failures abort the whole pass, since every generation depends
// on the one before it. Solver failures, symmetry violations and cross-check
// mismatches skip the spectrum of one generation; unwritable files skip that
// file only. With Options.AbortOnError any of these stops the run instead.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/san-kum/recmat/internal/config"
	"github.com/san-kum/recmat/internal/family"
	"github.com/san-kum/recmat/internal/spectrum"
	"github.com/san-kum/recmat/internal/storage"
)

type Runner struct {
	generations int
	solver      spectrum.Solver
	layout      storage.Layout
	opts        Options
	observers   []Observer
	out         io.Writer
	errOut      io.Writer

	family *family.Family
}

func New(generations int, solver spectrum.Solver, layout storage.Layout, opts Options) *Runner {
	return &Runner{
		generations: generations,
		solver:      solver,
		layout:      layout,
		opts:        opts,
		observers:   make([]Observer, 0),
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// FromConfig builds a runner from a validated configuration.
func FromConfig(cfg *config.Config, solver spectrum.Solver) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout := storage.Layout{
		EigenDir:  cfg.Output.EigenDir,
		MatrixDir: cfg.Output.MatrixDir,
		GraphDir:  cfg.Output.GraphDir,
	}
	opts := Options{
		VerifySymmetry: cfg.VerifySymmetry,
		CrossCheck:     cfg.CrossCheck,
		AbortOnError:   cfg.AbortOnError,
	}
	return New(cfg.Generations, solver, layout, opts), nil
}

// SetOutput redirects progress lines to out and warnings to errOut.
func (r *Runner) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Generations() int { return r.generations }

func (r *Runner) Layout() storage.Layout { return r.layout }

// Build constructs all generations and creates the output roots.
func (r *Runner) Build() (*family.Family, error) {
	f, err := family.Build(r.generations)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := r.layout.Init(); err != nil {
		// files are still attempted one by one and skipped individually
		fmt.Fprintf(r.errOut, "warning: %v\n", err)
	}
	r.family = f
	return f, nil
}

// Process solves and exports one generation. The returned error is non-nil
// only when the run should stop: a canceled context, or a failure under
// AbortOnError.
func (r *Runner) Process(ctx context.Context, gen int) (*GenerationResult, error) {
	if r.family == nil {
		return nil, ErrNotBuilt
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	g, err := r.family.Generation(gen)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &GenerationResult{Generation: gen, Dim: g.Dim()}
	defer func() {
		res.Elapsed = time.Since(start)
		for _, o := range r.observers {
			o.OnGeneration(res)
		}
	}()

	if err := r.check(g); err != nil {
		res.Err = &GenerationError{Generation: gen, Wrapped: err}
	} else if vals, err := r.solver.Eigenvalues(g.M); err != nil {
		res.Err = &GenerationError{Generation: gen, Wrapped: err}
	} else {
		res.Eigenvalues = vals
		r.write(res, r.layout.EigenvaluePath(gen), "Eigenvalues written to", func(p string) error {
			return storage.WriteEigenvalues(p, vals)
		})
	}
	if res.Err != nil {
		fmt.Fprintf(r.errOut, "error: %v, skipping spectrum\n", res.Err)
	}

	if storage.ExportsMatrix(gen) {
		r.write(res, r.layout.MatrixPath(gen), "Matrix saved to", func(p string) error {
			return storage.WriteMatrix(p, g.M)
		})
	}

	if r.opts.AbortOnError && !res.OK() {
		return res, fmt.Errorf("%w at generation %d", ErrAborted, gen)
	}
	return res, nil
}

func (r *Runner) write(res *GenerationResult, path, msg string, fn func(string) error) {
	if err := fn(path); err != nil {
		fmt.Fprintf(r.errOut, "error: %v, skipping file\n", err)
		res.Skipped = append(res.Skipped, err)
		return
	}
	res.Files = append(res.Files, path)
	fmt.Fprintf(r.out, "%s %s\n", msg, path)
}

// Run builds the family, processes every generation in order and saves the
// run summary. Results gathered before an abort are still returned.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := r.NewReport()

	if _, err := r.Build(); err != nil {
		return report, err
	}

	var runErr error
	for gen := 1; gen <= r.generations; gen++ {
		res, err := r.Process(ctx, gen)
		if res != nil {
			report.Results = append(report.Results, res)
		}
		if err != nil {
			runErr = err
			break
		}
	}
	report.Finished = time.Now()

	r.SaveSummary(report)
	return report, runErr
}

// NewReport starts an empty report for callers driving Process themselves.
func (r *Runner) NewReport() *Report {
	return &Report{Solver: spectrum.Name(r.solver), Started: time.Now()}
}

// SaveSummary writes the report to the layout's summary file. A failure is
// logged and otherwise ignored.
func (r *Runner) SaveSummary(report *Report) {
	if report.Finished.IsZero() {
		report.Finished = time.Now()
	}
	if err := storage.SaveSummary(r.layout.SummaryPath(), report.Summary()); err != nil {
		fmt.Fprintf(r.errOut, "error: %v, skipping summary\n", err)
	}
}
