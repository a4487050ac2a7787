package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the renderers use, derived from one Theme
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	KeyHint  lipgloss.Style
	Panel    lipgloss.Style
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Complete lipgloss.Style
	Invalid  lipgloss.Style

	Bar         lipgloss.Style
	Compared    lipgloss.Style
	Swapped     lipgloss.Style
	Current     lipgloss.Style
	Highlighted lipgloss.Style
	Sorted      lipgloss.Style

	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		Theme: t,

		Title:    fg(t.Title).Bold(true),
		Text:     fg(t.Text),
		Muted:    fg(t.Muted),
		Label:    fg(t.Muted),
		Value:    fg(t.Title).Bold(true),
		KeyHint:  fg(t.Muted).Italic(true),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		Playing:  fg(t.Playing).Bold(true),
		Paused:   fg(t.Paused).Bold(true),
		Complete: fg(t.Sorted).Bold(true),
		Invalid:  fg(t.Invalid).Bold(true),

		Bar:         fg(t.Bar),
		Compared:    fg(t.Compared),
		Swapped:     fg(t.Swapped).Bold(true),
		Current:     fg(t.Current).Bold(true),
		Highlighted: fg(t.Highlighted),
		Sorted:      fg(t.Sorted),

		SparkHigh: fg(t.Swapped),
		SparkMid:  fg(t.Compared),
		SparkLow:  fg(t.Sorted),
	}
}

// ProgressBar renders percent in [0, 1] as a bar of width cells
func (st Styles) ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	return st.Value.Render(strings.Repeat("━", filled)) + st.Muted.Render(strings.Repeat("─", width-filled))
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a mini chart of values, sampled down to width cells
func (st Styles) Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return st.Muted.Render(strings.Repeat("─", width))
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(len(values)/width, 1)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := max(0, min(int(norm*float64(len(sparkChars)-1)), len(sparkChars)-1))
		c := string(sparkChars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(st.SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(st.SparkMid.Render(c))
		default:
			b.WriteString(st.SparkLow.Render(c))
		}
	}
	return b.String()
}

// Separator renders a decorated horizontal rule
func (st Styles) Separator(width int) string {
	if width < 8 {
		return st.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return st.Muted.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
