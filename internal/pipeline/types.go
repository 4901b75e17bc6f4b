package pipeline

import (
	"time"

	"github.com/san-kum/recmat/internal/storage"
)

type Options struct {
	VerifySymmetry bool
	CrossCheck     bool
	AbortOnError   bool
}

// GenerationResult is the outcome of processing one generation.
// Err is set when no spectrum was produced; file failures only land in Skipped.
type GenerationResult struct {
	Generation  int
	Dim         int
	Eigenvalues []float64
	Files       []string
	Skipped     []error
	Err         error
	Elapsed     time.Duration
}

func (r *GenerationResult) OK() bool {
	return r.Err == nil && len(r.Skipped) == 0
}

type Observer interface {
	OnGeneration(r *GenerationResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r *GenerationResult)

func (f ObserverFunc) OnGeneration(r *GenerationResult) { f(r) }

type Report struct {
	Solver   string
	Started  time.Time
	Finished time.Time
	Results  []*GenerationResult
}

// Failed returns the results that produced no spectrum.
func (r *Report) Failed() []*GenerationResult {
	var out []*GenerationResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Summary converts the report into its persisted form.
func (r *Report) Summary() *storage.Summary {
	s := &storage.Summary{
		Generations: len(r.Results),
		Solver:      r.Solver,
		Started:     r.Started,
		Finished:    r.Finished,
		Records:     make([]storage.GenerationRecord, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		rec := storage.GenerationRecord{
			Generation: res.Generation,
			Dim:        res.Dim,
			Files:      res.Files,
			Elapsed:    res.Elapsed.Seconds(),
			Timestamp:  r.Finished,
		}
		if n := len(res.Eigenvalues); n > 0 {
			rec.Min = res.Eigenvalues[0]
			rec.Max = res.Eigenvalues[n-1]
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		for _, err := range res.Skipped {
			rec.Skipped = append(rec.Skipped, err.Error())
		}
		s.Records = append(s.Records, rec)
	}
	return s
}
