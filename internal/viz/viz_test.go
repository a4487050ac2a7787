package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algotrace/internal/trace"
)

var st = NewStyles(DefaultTheme)

func TestBars(t *testing.T) {
	s := trace.Step{
		Compared: []int{0, 1},
		Data:     trace.Data{Array: []int{1, 2, 3}},
	}
	out := ansi.Strip(st.Bars(s, 40, 4))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, 1, strings.Count(lines[0], "█"), "only the largest value reaches the top row")
	assert.Equal(t, 3, strings.Count(lines[2], "█"), "every value has a bar on the bottom row")
	assert.Equal(t, "1 2 3 ", lines[3])
}

func TestBars_NegativeAndEqual(t *testing.T) {
	neg := ansi.Strip(st.Bars(trace.Step{Data: trace.Data{Array: []int{-5, 5}}}, 20, 3))
	assert.Contains(t, neg, "-5")

	flat := ansi.Strip(st.Bars(trace.Step{Data: trace.Data{Array: []int{7, 7}}}, 20, 3))
	lines := strings.Split(flat, "\n")
	assert.Equal(t, 2, strings.Count(lines[0], "█"))

	assert.Empty(t, st.Bars(trace.Step{}, 20, 3))
}

func TestGraph(t *testing.T) {
	out := ansi.Strip(st.Graph(&trace.GraphState{
		Current:   2,
		Visited:   []int{0, 1, 2},
		Frontier:  []int{3},
		Path:      []int{0, 2},
		MSTEdges:  []trace.Edge{{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: 2}},
		Distances: []int{0, 1, 3, -1},
	}))

	assert.Contains(t, out, "0 → 1 → 2")
	assert.Contains(t, out, "0-1(1) 1-2(2)")
	assert.Contains(t, out, "weight 3")
	assert.Contains(t, out, "3:∞")
}

func TestMatch_AlignsPattern(t *testing.T) {
	out := ansi.Strip(st.Match(&trace.MatchState{TextIndex: 4, PatternIndex: 1, Matches: []int{0}}, "abdabd", "abd"))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, "abdabd", lines[0])
	assert.Equal(t, "   abd", lines[1])
	assert.Equal(t, "matches [0]", lines[2])
}

func TestTable(t *testing.T) {
	out := ansi.Strip(st.Table(&trace.TableState{
		Rows:    [][]int{{0, 1, 1}, {2, 3, 10}},
		Written: []trace.Cell{{Row: 1, Col: 2}},
	}))
	assert.Equal(t, " 0  1  1 \n 2  3 10 ", out)
}

func TestStep_PicksPanel(t *testing.T) {
	f := Frame{Width: 40, Height: 6, Text: "aaa", Pattern: "a"}

	invalid := trace.Single("kmp", "pattern is empty").First()
	assert.Contains(t, ansi.Strip(st.Step(invalid, f)), "invalid input: pattern is empty")

	table := trace.Step{Data: trace.Data{Table: &trace.TableState{Rows: [][]int{{4}}}}}
	assert.Equal(t, "4 ", ansi.Strip(st.Step(table, f)))

	match := trace.Step{Data: trace.Data{Match: &trace.MatchState{}}}
	assert.True(t, strings.HasPrefix(ansi.Strip(st.Step(match, f)), "aaa\na"))
}

func TestProgressBar(t *testing.T) {
	for _, p := range []float64{-1, 0, 0.5, 1, 2} {
		bar := ansi.Strip(st.ProgressBar(p, 20))
		assert.Equal(t, 20, utf8.RuneCountInString(bar), "percent %v", p)
	}
	assert.Equal(t, "━━━━━─────", ansi.Strip(st.ProgressBar(0.5, 10)))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, 4, utf8.RuneCountInString(ansi.Strip(st.Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4))))
	assert.Equal(t, 3, utf8.RuneCountInString(ansi.Strip(st.Sparkline([]float64{1, 5, 9}, 10))))
	assert.Equal(t, "───", ansi.Strip(st.Sparkline(nil, 3)))

	rising := []rune(ansi.Strip(st.Sparkline([]float64{0, 10}, 2)))
	assert.Equal(t, []rune{'▁', '█'}, rising)
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, 30, utf8.RuneCountInString(ansi.Strip(st.Separator(30))))
}

func TestThemes(t *testing.T) {
	assert.Len(t, ThemeNames(), 5)
	assert.Equal(t, "ocean", GetTheme("ocean").Name)
	assert.Equal(t, DefaultTheme.Name, GetTheme("nope").Name)
}

func TestThemes_RolesAreDistinct(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		roles := []lipgloss.Color{th.Swapped, th.Compared, th.Current, th.Highlighted, th.Sorted, th.Bar}
		for i := range roles {
			assert.NotEmpty(t, roles[i], name)
			for j := i + 1; j < len(roles); j++ {
				assert.NotEqual(t, roles[i], roles[j], "%s roles %d and %d share a colour", name, i, j)
			}
		}
	}
}
