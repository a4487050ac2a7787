package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algotrace/internal/playback"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/viz"
)

// Options configures the interactive player.
type Options struct {
	Styles     viz.Styles
	Complexity stats.Complexity
	// Speed multipliers reachable with +/-.
	MinSpeed float64
	MaxSpeed float64
	// Text and Pattern feed the string-matching panel.
	Text    string
	Pattern string
}

type model struct {
	engine *playback.Engine
	opts   Options
	series stats.Columns

	width  int
	height int
	err    error
}

// NewPlayer returns a bubbletea model driving e. The engine keeps its own
// timer; the model only redraws on a fixed tick and forwards keys as
// commands.
func NewPlayer(e *playback.Engine, opts Options) tea.Model {
	if opts.MinSpeed <= 0 {
		opts.MinSpeed = 0.25
	}
	if opts.MaxSpeed < opts.MinSpeed {
		opts.MaxSpeed = max(16, opts.MinSpeed)
	}
	return model{
		engine: e,
		opts:   opts,
		series: stats.Series(e.Trace()),
		width:  80,
		height: 24,
	}
}

// Run starts the player on the alternate screen and closes e when the user
// quits.
func Run(e *playback.Engine, opts Options) error {
	defer e.Close()
	_, err := tea.NewProgram(NewPlayer(e, opts), tea.WithAltScreen()).Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	e := m.engine
	m.err = nil
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		e.Close()
		return m, tea.Quit
	case " ", "p":
		if e.Snapshot().Animation == playback.Playing {
			e.Pause()
		} else {
			e.Play()
		}
	case "right", "l":
		e.StepForward()
	case "left", "h":
		e.StepBackward()
	case "r":
		e.Reset()
	case "g", "home":
		e.GoToStep(0)
	case "G", "end":
		e.GoToStep(e.Snapshot().Total - 1)
	case "+", "=":
		m.err = e.SetSpeed(m.clamp(e.Snapshot().Speed * 2))
	case "-", "_":
		m.err = e.SetSpeed(m.clamp(e.Snapshot().Speed / 2))
	case "0":
		m.err = e.SetSpeed(m.clamp(playback.DefaultSpeed))
	}
	return m, nil
}

func (m model) clamp(s float64) float64 {
	return max(m.opts.MinSpeed, min(s, m.opts.MaxSpeed))
}

func (m model) status(a playback.Animation) string {
	st := m.opts.Styles
	switch a {
	case playback.Playing:
		return st.Playing.Render("● playing")
	case playback.Paused:
		return st.Paused.Render("○ paused")
	case playback.Completed:
		return st.Complete.Render("✓ completed")
	}
	return st.Muted.Render("○ idle")
}

func (m model) View() string {
	st := m.opts.Styles
	snap := m.engine.Snapshot()
	step := snap.Step
	inner := max(m.width-6, 40)

	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n   %s  %s  %s\n",
		st.Title.Render(snap.Algorithm), m.status(snap.Animation),
		st.Muted.Render(fmt.Sprintf("%.2gx  %s/step", snap.Speed, snap.Interval))))

	counter := fmt.Sprintf("%d/%d", snap.Index+1, snap.Total)
	b.WriteString(fmt.Sprintf("   %s %s\n\n", st.ProgressBar(snap.Progress/100, 36), st.Muted.Render(counter)))

	b.WriteString("   " + st.Value.Render(step.ID) + "  " + st.Text.Render(step.Description) + "\n\n")

	panelHeight := max(m.height-16, 6)
	panel := st.Step(step, viz.Frame{
		Width:   inner,
		Height:  panelHeight,
		Text:    m.opts.Text,
		Pattern: m.opts.Pattern,
	})
	b.WriteString(indent(st.Panel.Render(panel), "   ") + "\n\n")

	s := stats.Project(step, m.opts.Complexity)
	b.WriteString(fmt.Sprintf("   %s %s   %s %s   %s %s   %s %s\n",
		st.Label.Render("comparisons"), st.Value.Render(fmt.Sprint(s.Comparisons)),
		st.Label.Render("swaps"), st.Value.Render(fmt.Sprint(s.Swaps)),
		st.Label.Render("accesses"), st.Value.Render(fmt.Sprint(s.Accesses)),
		st.Label.Render("time"), st.Value.Render(s.Complexity.Time)))

	if n := min(snap.Index+1, m.series.Len()); n > 1 {
		b.WriteString("   " + st.Label.Render("comparisons ") + st.Sparkline(m.series.Comparisons[:n], min(n, 40)) + "\n")
	}
	if m.err != nil {
		b.WriteString("   " + st.Invalid.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + st.KeyHint.Render("   space play/pause  ←→ step  g/G first/last  r reset  +/- speed  q quit") + "\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
