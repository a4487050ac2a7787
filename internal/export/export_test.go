package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/trace"
)

func scenarioA(t *testing.T) (algorithms.Kind, *trace.Trace) {
	t.Helper()
	k, tr, err := algorithms.Run("linear-search", "scenario-a", nil)
	require.NoError(t, err)
	return k, tr
}

func TestJSON(t *testing.T) {
	k, tr := scenarioA(t)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, k, tr))

	var doc struct {
		Algorithm  string `json:"algorithm"`
		Family     string `json:"family"`
		Steps      int    `json:"steps"`
		Outcome    string `json:"outcome"`
		Final      stats.Stats
		Complexity stats.Complexity
		Trace      struct {
			Algorithm string            `json:"algorithm"`
			Steps     []json.RawMessage `json:"steps"`
		} `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "linear-search", doc.Algorithm)
	assert.Equal(t, "search", doc.Family)
	assert.Equal(t, 5, doc.Steps)
	assert.Equal(t, "found", doc.Outcome)
	assert.Equal(t, 3, doc.Final.Comparisons)
	assert.Equal(t, "O(n)", doc.Complexity.Time)
	assert.Len(t, doc.Trace.Steps, 5)
}

func TestCSV(t *testing.T) {
	_, tr := scenarioA(t)

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, tr))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"0", "init"}, rows[1][:2])
	assert.Equal(t, []string{"4", "found", "3", "0"}, rows[5][:4])
}

func TestCSV_Golden(t *testing.T) {
	_, tr := scenarioA(t)

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, tr))

	g := goldie.New(t)
	g.Assert(t, "scenario_a.csv", buf.Bytes())
}

func TestStepSVG(t *testing.T) {
	_, tr := scenarioA(t)

	svg := StepSVG(tr.At(2), 1)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 4, strings.Count(svg, "<rect x="))
	assert.Contains(t, svg, colorCompared)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	assert.Empty(t, StepSVG(trace.Step{}, 1))
}

func TestStepSVG_NegativeValues(t *testing.T) {
	s := trace.Step{Data: trace.Data{Array: []int{-3, 0, 5}}}
	svg := StepSVG(s, 2)

	assert.Equal(t, 3, strings.Count(svg, "<rect x="))
	assert.NotContains(t, svg, `height="-`)
}

func TestSeriesSVG(t *testing.T) {
	_, tr := scenarioA(t)
	cols := stats.Series(tr)

	svg := SeriesSVG(cols.Comparisons, 200, 100, "#fff")
	assert.Contains(t, svg, `d="M0.0,`)
	assert.Equal(t, 4, strings.Count(svg, " L"))

	assert.Empty(t, SeriesSVG([]float64{1}, 10, 10, "#fff"))
}
