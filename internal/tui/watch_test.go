package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/recmat/internal/pipeline"
	"github.com/san-kum/recmat/internal/spectrum"
	"github.com/san-kum/recmat/internal/storage"
)

func newTestRunner(t *testing.T, k int) *pipeline.Runner {
	t.Helper()
	dir := t.TempDir()
	layout := storage.Layout{
		EigenDir:  filepath.Join(dir, "eigenCSV"),
		MatrixDir: filepath.Join(dir, "exportedMatrices"),
	}
	r := pipeline.New(k, spectrum.NewSymmetricSolver(), layout, pipeline.Options{VerifySymmetry: true})
	r.SetOutput(io.Discard, io.Discard)
	return r
}

// drive feeds msg to m and keeps executing the returned commands until the
// model stops producing generation work.
func drive(t *testing.T, m model) model {
	t.Helper()
	msg := m.build()()
	for i := 0; i < 64; i++ {
		next, cmd := m.Update(msg)
		m = next.(model)
		if cmd == nil || m.done {
			return m
		}
		msg = cmd()
	}
	t.Fatal("model did not finish")
	return m
}

func TestWatchRunsAllGenerations(t *testing.T) {
	r := newTestRunner(t, 3)
	m := drive(t, newModel(context.Background(), r))
	defer m.cancel()

	if !m.done {
		t.Fatal("expected model to be done")
	}
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if len(m.report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(m.report.Results))
	}

	view := m.View()
	if !strings.Contains(view, "3/3") {
		t.Errorf("expected progress 3/3 in view:\n%s", view)
	}
	if !strings.Contains(view, "done") {
		t.Errorf("expected done marker in view:\n%s", view)
	}

	if _, err := storage.LoadSummary(r.Layout().SummaryPath()); err != nil {
		t.Errorf("summary not saved: %v", err)
	}
}

func TestWatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := drive(t, newModel(ctx, newTestRunner(t, 3)))
	if !errors.Is(m.err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", m.err)
	}
	if len(m.report.Results) != 0 {
		t.Errorf("expected no results, got %d", len(m.report.Results))
	}
}

func TestProgressBar(t *testing.T) {
	bar := progressBar(1, 2)
	if strings.Count(bar, "█") != barWidth/2 {
		t.Errorf("expected half-filled bar, got %q", bar)
	}
	if progressBar(0, 0) != "" {
		t.Error("expected empty bar for zero total")
	}
}
