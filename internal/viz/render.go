package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algotrace/internal/trace"
)

// Frame is the space a step panel may use. Text and Pattern are only needed
// by string matchers, whose steps carry cursors but not the strings.
type Frame struct {
	Width   int
	Height  int
	Text    string
	Pattern string
}

// Step renders the payload panel that fits the step's family.
func (st Styles) Step(s trace.Step, f Frame) string {
	var body string
	switch d := s.Data; {
	case d.Graph != nil:
		body = st.Graph(d.Graph)
	case d.Match != nil:
		body = st.Match(d.Match, f.Text, f.Pattern)
	case d.Table != nil:
		body = st.Table(d.Table)
	case len(d.Array) > 0:
		body = st.Bars(s, f.Width, f.Height)
	default:
		body = st.Muted.Render("(no data)")
	}
	if r := s.Data.Result; r != nil && r.Outcome == trace.OutcomeInvalid {
		body = st.Invalid.Render("invalid input: "+r.Reason) + "\n" + body
	}
	return body
}

// role ranks the ways an index can be marked in a step; higher wins.
type role int

const (
	roleNone role = iota
	roleSorted
	roleHighlighted
	roleCurrent
	roleCompared
	roleSwapped
)

func roles(s trace.Step, n int) []role {
	out := make([]role, n)
	mark := func(idx []int, r role) {
		for _, i := range idx {
			if i >= 0 && i < n && out[i] < r {
				out[i] = r
			}
		}
	}
	mark(s.Sorted, roleSorted)
	mark(s.Highlighted, roleHighlighted)
	if s.Current != nil {
		mark([]int{*s.Current}, roleCurrent)
	}
	mark(s.Compared, roleCompared)
	mark(s.Swapped, roleSwapped)
	return out
}

func (st Styles) roleStyle(r role) lipgloss.Style {
	switch r {
	case roleSorted:
		return st.Sorted
	case roleHighlighted:
		return st.Highlighted
	case roleCurrent:
		return st.Current
	case roleCompared:
		return st.Compared
	case roleSwapped:
		return st.Swapped
	}
	return st.Bar
}

// Bars draws the step's array as vertical bars within width x height cells,
// the last row holding the values. Bars are scaled between the smallest and
// largest value, so negative values are drawn too.
func (st Styles) Bars(s trace.Step, width, height int) string {
	arr := s.Data.Array
	n := len(arr)
	if n == 0 {
		return ""
	}
	height = max(height-1, 1)

	labels := make([]string, n)
	col := 1
	for i, v := range arr {
		labels[i] = strconv.Itoa(v)
		col = max(col, len(labels[i]))
	}
	if fit := width/n - 1; col > fit {
		col = max(fit, 1)
	}

	lo, hi := arr[0], arr[0]
	for _, v := range arr {
		lo, hi = min(lo, v), max(hi, v)
	}
	bar := func(v int) int {
		if hi == lo {
			return height
		}
		return 1 + (v-lo)*(height-1)/(hi-lo)
	}

	rs := roles(s, n)
	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i, v := range arr {
			cell := strings.Repeat(" ", col)
			if bar(v) >= row {
				cell = st.roleStyle(rs[i]).Render(strings.Repeat("█", col))
			}
			b.WriteString(cell)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	for i, l := range labels {
		if len(l) > col {
			l = l[:col-1] + "…"
		}
		b.WriteString(st.roleStyle(rs[i]).Render(fmt.Sprintf("%*s", col, l)))
		b.WriteByte(' ')
	}
	return b.String()
}

func (st Styles) ints(label string, xs []int, style lipgloss.Style) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return st.Label.Render(fmt.Sprintf("%-10s", label)) + style.Render(strings.Join(parts, " → "))
}

// Graph lists the traversal state of a graph step.
func (st Styles) Graph(g *trace.GraphState) string {
	var lines []string
	cur := "-"
	if g.Current >= 0 {
		cur = strconv.Itoa(g.Current)
	}
	lines = append(lines, st.Label.Render(fmt.Sprintf("%-10s", "current"))+st.Current.Render(cur))
	lines = append(lines, st.ints("visited", g.Visited, st.Sorted))
	lines = append(lines, st.Label.Render(fmt.Sprintf("%-10s", "frontier"))+st.Compared.Render(fmt.Sprint(g.Frontier)))
	if len(g.Path) > 0 {
		lines = append(lines, st.ints("path", g.Path, st.Highlighted))
	}
	if len(g.MSTEdges) > 0 {
		edges := make([]string, len(g.MSTEdges))
		total := 0
		for i, e := range g.MSTEdges {
			edges[i] = fmt.Sprintf("%d-%d(%d)", e.From, e.To, e.Weight)
			total += e.Weight
		}
		lines = append(lines, st.Label.Render(fmt.Sprintf("%-10s", "mst"))+
			st.Highlighted.Render(strings.Join(edges, " "))+st.Muted.Render(fmt.Sprintf("  weight %d", total)))
	}
	if len(g.Distances) > 0 {
		ds := make([]string, len(g.Distances))
		for v, d := range g.Distances {
			val := "∞"
			if d >= 0 {
				val = strconv.Itoa(d)
			}
			ds[v] = fmt.Sprintf("%d:%s", v, val)
		}
		lines = append(lines, st.Label.Render(fmt.Sprintf("%-10s", "dist"))+st.Value.Render(strings.Join(ds, "  ")))
	}
	return strings.Join(lines, "\n")
}

// Match aligns pattern under text at the matcher's current window. Indices
// are rune offsets.
func (st Styles) Match(m *trace.MatchState, text, pattern string) string {
	tr, pr := []rune(text), []rune(pattern)
	matched := make([]bool, len(tr))
	for _, s := range m.Matches {
		for i := s; i < s+len(pr) && i < len(tr); i++ {
			matched[i] = true
		}
	}

	var top strings.Builder
	for i, r := range tr {
		c := string(r)
		switch {
		case i == m.TextIndex:
			top.WriteString(st.Current.Render(c))
		case matched[i]:
			top.WriteString(st.Sorted.Render(c))
		default:
			top.WriteString(st.Text.Render(c))
		}
	}

	offset := max(m.TextIndex-m.PatternIndex, 0)
	var bottom strings.Builder
	bottom.WriteString(strings.Repeat(" ", offset))
	for j, r := range pr {
		if j == m.PatternIndex {
			bottom.WriteString(st.Current.Render(string(r)))
		} else {
			bottom.WriteString(st.Highlighted.Render(string(r)))
		}
	}

	lines := []string{top.String(), bottom.String()}
	if len(m.LPS) > 0 {
		lines = append(lines, st.Label.Render("lps ")+st.Muted.Render(fmt.Sprint(m.LPS)))
	}
	if len(m.Matches) > 0 {
		lines = append(lines, st.Label.Render("matches ")+st.Sorted.Render(fmt.Sprint(m.Matches)))
	}
	return strings.Join(lines, "\n")
}

// Table draws a DP table with the cells written in this step marked.
func (st Styles) Table(t *trace.TableState) string {
	written := make(map[trace.Cell]bool, len(t.Written))
	for _, c := range t.Written {
		written[c] = true
	}

	col := 1
	for _, row := range t.Rows {
		for _, v := range row {
			col = max(col, len(strconv.Itoa(v)))
		}
	}

	lines := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		var b strings.Builder
		for c, v := range row {
			cell := fmt.Sprintf("%*d", col, v)
			if written[trace.Cell{Row: r, Col: c}] {
				b.WriteString(st.Current.Render(cell))
			} else {
				b.WriteString(st.Text.Render(cell))
			}
			b.WriteByte(' ')
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}
