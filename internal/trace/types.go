package trace

import "fmt"

// Outcome is the definite result reported by the terminal step of a trace.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeSorted   Outcome = "sorted"
	OutcomeComplete Outcome = "complete"
	OutcomeEmpty    Outcome = "empty"
	OutcomeInvalid  Outcome = "invalid"
)

// Counters are cumulative work counters. They only grow within a trace.
type Counters struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Accesses    int `json:"accesses"`
}

// Bounds holds the search window of a divide-and-conquer search.
// Mid is -1 until the first midpoint is computed.
type Bounds struct {
	Low  int `json:"low"`
	Mid  int `json:"mid"`
	High int `json:"high"`
}

// Result is attached to the terminal step.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Index   int     `json:"index"`
	Value   int     `json:"value,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

func (r *Result) Found() bool { return r != nil && r.Outcome == OutcomeFound }

// Edge is an undirected or directed weighted edge between two vertex ids.
type Edge struct {
	From   int `json:"u" yaml:"from" mapstructure:"from"`
	To     int `json:"v" yaml:"to" mapstructure:"to"`
	Weight int `json:"w" yaml:"weight" mapstructure:"weight"`
}

// GraphState is the traversal snapshot. Current is -1 when no vertex is
// processed in the step.
type GraphState struct {
	Current   int    `json:"current"`
	Visited   []int  `json:"visited"`
	Frontier  []int  `json:"frontier"`
	MSTEdges  []Edge `json:"mst_edges,omitempty"`
	Path      []int  `json:"path,omitempty"`
	Distances []int  `json:"distances,omitempty"`
}

// MatchState holds the cursors of a string matcher. LPS is shared between
// steps and must be treated as read-only.
type MatchState struct {
	TextIndex    int   `json:"text_index"`
	PatternIndex int   `json:"pattern_index"`
	LPS          []int `json:"lps,omitempty"`
	Matches      []int `json:"matches,omitempty"`
}

// Cell addresses one entry of a DP table.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// TableState is a full copy of a DP table plus the cells written in the step.
// One-dimensional tables have a single row.
type TableState struct {
	Rows    [][]int `json:"rows"`
	Written []Cell  `json:"written,omitempty"`
}

// Data is the algorithm-specific payload of a step. Each family fills only its
// own section.
type Data struct {
	Counters
	Array  []int          `json:"array,omitempty"`
	Target *int           `json:"target,omitempty"`
	Bounds *Bounds        `json:"bounds,omitempty"`
	Result *Result        `json:"result,omitempty"`
	Graph  *GraphState    `json:"graph,omitempty"`
	Match  *MatchState    `json:"match,omitempty"`
	Table  *TableState    `json:"table,omitempty"`
	Vars   map[string]int `json:"vars,omitempty"`
}

// Step is one discrete snapshot of algorithm progress.
type Step struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Highlighted []int  `json:"highlighted_indices,omitempty"`
	Compared    []int  `json:"compared_indices,omitempty"`
	Swapped     []int  `json:"swapped_indices,omitempty"`
	Sorted      []int  `json:"sorted_indices,omitempty"`
	Current     *int   `json:"current_index,omitempty"`
	Data        Data   `json:"data"`
}

// Terminal reports whether the step carries a definite result.
func (s Step) Terminal() bool { return s.Data.Result != nil }

func (s Step) String() string {
	return fmt.Sprintf("%s: %s", s.ID, s.Description)
}

// Int returns a pointer to v, for the optional index fields of a step.
func Int(v int) *int { return &v }
