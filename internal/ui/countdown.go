package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/xvgu/xvguctl/internal/logging"
)

const countdownInterval = 100 * time.Millisecond

type tickMsg time.Time

// countdownModel is a Bubble Tea model showing a bar that fills over total.
type countdownModel struct {
	label string
	total time.Duration
	start time.Time
	now   time.Time
	bar   progress.Model
	done  bool
}

func newCountdownModel(label string, total time.Duration, start time.Time, width int) countdownModel {
	return countdownModel{
		label: label,
		total: total,
		start: start,
		now:   start,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth(width))),
	}
}

func barWidth(width int) int {
	w := width - 24 // label padding and remaining-time note
	if w < 20 {
		w = 20
	}
	if w > 50 {
		w = 50
	}
	return w
}

func tick() tea.Cmd {
	return tea.Tick(countdownInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model
func (m countdownModel) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model. Key presses are ignored.
func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		if m.elapsed() >= m.total {
			m.done = true
			return m, tea.Quit
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.bar.Width = barWidth(msg.Width)
	}
	return m, nil
}

func (m countdownModel) elapsed() time.Duration {
	return m.now.Sub(m.start)
}

func (m countdownModel) percent() float64 {
	if m.total <= 0 {
		return 1
	}
	p := float64(m.elapsed()) / float64(m.total)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// View implements tea.Model
func (m countdownModel) View() string {
	if m.done {
		return ""
	}
	remaining := (m.total - m.elapsed()).Round(100 * time.Millisecond)
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%s\n  %s  %s\n",
		LabelStyle.Render(m.label),
		m.bar.ViewAs(m.percent()),
		NoteStyle.Render(remaining.String()+" left"),
	)
}

// CountdownWaiter waits while drawing a progress bar on Out.
type CountdownWaiter struct {
	Out   io.Writer
	Label string
}

// Wait blocks for d. If the Bubble Tea program exits early for any reason
// the rest of d is slept.
func (w CountdownWaiter) Wait(d time.Duration) {
	start := time.Now()
	label := w.Label
	if label == "" {
		label = "Buzzer sounding..."
	}

	model := newCountdownModel(label, d, start, TerminalWidth(w.Out))
	p := tea.NewProgram(model, tea.WithOutput(w.Out), tea.WithInput(nil))
	if _, err := p.Run(); err != nil {
		logging.Debug("Countdown stopped early", zap.Error(err))
	}

	if rest := d - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
}
