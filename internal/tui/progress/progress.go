// Package progress reports per-file progress while the generator ingests a
// list of input paths, adapted from the teacher's internal/tui progress
// tracker (bubbletea progress bar over TTY, plain text otherwise): same
// three Tracker implementations, generalized from "vendor files synced" to
// "components processed".
package progress

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Tracker reports progress through a bounded sequence of steps.
type Tracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

type model struct {
	current int
	total   int
	label   string
	message string
	done    bool
	failed  bool
	err     error
	width   int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case incrementMsg:
		m.current++
		m.message = msg.message
	case setTotalMsg:
		m.total = msg.total
	case completeMsg:
		m.done = true
		return m, tea.Quit
	case failMsg:
		m.failed = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return styleSuccess.Render(fmt.Sprintf("done %s (%d/%d)", m.label, m.current, m.total))
	}
	if m.failed {
		return styleErr.Render(fmt.Sprintf("failed %s: %v", m.label, m.err))
	}

	barWidth := 40
	if m.width < 80 {
		barWidth = 20
	}
	var percent float64
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	filled := int(percent * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	status := fmt.Sprintf("[%s] %d/%d", bar, m.current, m.total)
	if m.message != "" {
		status += " - " + m.message
	}
	return fmt.Sprintf("%s\n%s", styleTitle.Render(m.label), status)
}

type incrementMsg struct{ message string }
type setTotalMsg struct{ total int }
type completeMsg struct{}
type failMsg struct{ err error }

// BubbleTeaTracker renders a live progress bar for interactive terminals.
type BubbleTeaTracker struct {
	program *tea.Program
}

// NewBubbleTeaTracker starts a bubbletea program rendering total steps
// under label.
func NewBubbleTeaTracker(total int, label string) *BubbleTeaTracker {
	p := tea.NewProgram(model{total: total, label: label, width: 80})
	t := &BubbleTeaTracker{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return t
}

func (t *BubbleTeaTracker) Increment(message string) { t.program.Send(incrementMsg{message: message}) }
func (t *BubbleTeaTracker) SetTotal(total int)       { t.program.Send(setTotalMsg{total: total}) }
func (t *BubbleTeaTracker) Complete() {
	t.program.Send(completeMsg{})
	time.Sleep(100 * time.Millisecond)
}
func (t *BubbleTeaTracker) Fail(err error) {
	t.program.Send(failMsg{err: err})
	time.Sleep(100 * time.Millisecond)
}

// TextTracker prints one line per step, for non-TTY output.
type TextTracker struct {
	current int
	total   int
	label   string
}

// NewTextTracker returns a Tracker that prints plain progress lines.
func NewTextTracker(total int, label string) *TextTracker {
	fmt.Printf("%s: 0/%d\n", label, total)
	return &TextTracker{total: total, label: label}
}

func (t *TextTracker) Increment(message string) {
	t.current++
	line := fmt.Sprintf("  [%d/%d]", t.current, t.total)
	if message != "" {
		line += " " + message
	}
	fmt.Println(line)
}
func (t *TextTracker) SetTotal(total int) { t.total = total }
func (t *TextTracker) Complete() {
	fmt.Printf("%s: completed (%d/%d)\n", t.label, t.current, t.total)
}
func (t *TextTracker) Fail(err error) {
	fmt.Printf("%s: failed - %v\n", t.label, err)
}

// NoOpTracker discards all progress, for quiet/JSON output.
type NoOpTracker struct{}

func NewNoOpTracker() NoOpTracker    { return NoOpTracker{} }
func (NoOpTracker) Increment(string) {}
func (NoOpTracker) SetTotal(int)     {}
func (NoOpTracker) Complete()        {}
func (NoOpTracker) Fail(error)       {}
