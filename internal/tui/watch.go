package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/recmat/internal/pipeline"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const barWidth = 30

type builtMsg struct{ err error }

type generationMsg struct {
	res *pipeline.GenerationResult
	err error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	ctx    context.Context
	cancel context.CancelFunc
	runner *pipeline.Runner
	report *pipeline.Report

	building bool
	quitting bool
	current  int
	started  time.Time
	now      time.Time
	done     bool
	err      error
}

func newModel(ctx context.Context, runner *pipeline.Runner) model {
	ctx, cancel := context.WithCancel(ctx)
	return model{
		ctx:      ctx,
		cancel:   cancel,
		runner:   runner,
		report:   runner.NewReport(),
		building: true,
		started:  time.Now(),
		now:      time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.build(), tick())
}

func (m model) build() tea.Cmd {
	return func() tea.Msg {
		_, err := m.runner.Build()
		return builtMsg{err: err}
	}
}

func (m model) process(gen int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.runner.Process(m.ctx, gen)
		return generationMsg{res: res, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			m.quitting = true
			if m.done || m.building {
				return m, tea.Quit
			}
		}
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.done {
			return m, nil
		}
		return m, tick()

	case builtMsg:
		m.building = false
		if msg.err != nil {
			m.err = msg.err
			return m.finish()
		}
		m.current = 1
		return m, m.process(1)

	case generationMsg:
		if msg.res != nil {
			m.report.Results = append(m.report.Results, msg.res)
		}
		if msg.err != nil {
			m.err = msg.err
			return m.finish()
		}
		if m.current >= m.runner.Generations() {
			return m.finish()
		}
		m.current++
		return m, m.process(m.current)
	}
	return m, nil
}

func (m model) finish() (tea.Model, tea.Cmd) {
	m.done = true
	m.report.Finished = time.Now()
	m.runner.SaveSummary(m.report)
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + cyan.Render("r e c m a t") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	total := m.runner.Generations()
	finished := len(m.report.Results)
	b.WriteString("    " + progressBar(finished, total) + " " +
		white.Render(fmt.Sprintf("%d/%d", finished, total)) + "  " +
		dim.Render(m.now.Sub(m.started).Truncate(100*time.Millisecond).String()) + "\n\n")

	for _, res := range m.report.Results {
		b.WriteString("    " + resultLine(res) + "\n")
	}

	switch {
	case m.building:
		b.WriteString("    " + dim.Render(fmt.Sprintf("building %d generations...", total)) + "\n")
	case !m.done:
		b.WriteString("    " + dim.Render(fmt.Sprintf("solving M_%d (%dx%d)...", m.current, 1<<m.current, 1<<m.current)) + "\n")
	case m.err != nil:
		b.WriteString("\n    " + red.Render(m.err.Error()) + "\n")
	default:
		b.WriteString("\n    " + green.Render("done") + dim.Render("  summary: "+m.runner.Layout().SummaryPath()) + "\n")
	}

	b.WriteString("\n" + dim.Render("    q quit") + "\n")
	return b.String()
}

func progressBar(done, total int) string {
	if total <= 0 {
		return ""
	}
	filled := done * barWidth / total
	return cyan.Render(strings.Repeat("█", filled)) + dimmer.Render(strings.Repeat("░", barWidth-filled))
}

func resultLine(res *pipeline.GenerationResult) string {
	label := white.Render(fmt.Sprintf("M_%-3d", res.Generation)) + dim.Render(fmt.Sprintf("%6d  %8s  ", res.Dim, res.Elapsed.Truncate(time.Millisecond)))
	switch {
	case res.Err != nil:
		return label + red.Render(res.Err.Error())
	case len(res.Skipped) > 0:
		return label + yellow.Render(fmt.Sprintf("%d file(s) skipped", len(res.Skipped)))
	default:
		n := len(res.Eigenvalues)
		return label + green.Render("ok") + dim.Render(fmt.Sprintf("  λ ∈ [%.6f, %.6f]", res.Eigenvalues[0], res.Eigenvalues[n-1]))
	}
}

// RunWatch drives runner generation by generation under a progress view.
// The runner's own output should be silenced by the caller.
func RunWatch(ctx context.Context, runner *pipeline.Runner) (*pipeline.Report, error) {
	m := newModel(ctx, runner)
	defer m.cancel()

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}
	fm := final.(model)
	return fm.report, fm.err
}
