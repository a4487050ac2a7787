package algorithms

import (
	"fmt"

	"github.com/san-kum/algotrace/internal/generators"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/trace"
)

type Family string

const (
	FamilySearch Family = "search"
	FamilySort   Family = "sort"
	FamilyGraph  Family = "graph"
	FamilyString Family = "string"
	FamilyDP     Family = "dp"
)

type Kind int

const (
	LinearSearch Kind = iota
	BinarySearch
	JumpSearch
	TernarySearch
	BubbleSort
	SelectionSort
	InsertionSort
	QuickSort
	BFS
	DFS
	Prim
	Dijkstra
	NaiveMatch
	KMP
	RabinKarp
	Fibonacci
	LCS
	EditDistance
	Knapsack
	numKinds
)

type entry struct {
	name       string
	family     Family
	complexity stats.Complexity
	fields     []string
	generate   func(Input) *trace.Trace
}

var (
	searchFields = []string{"array", "target"}
	sortFields   = []string{"array"}
	graphFields  = []string{"graph", "start", "goal"}
	stringFields = []string{"text", "pattern"}
	pairFields   = []string{"a", "b"}
)

func search(fn func([]int, int) *trace.Trace) func(Input) *trace.Trace {
	return func(in Input) *trace.Trace { return fn(in.Array, in.Target) }
}

func sorting(fn func([]int) *trace.Trace) func(Input) *trace.Trace {
	return func(in Input) *trace.Trace { return fn(in.Array) }
}

func traversal(fn func(generators.Graph, int, int) *trace.Trace) func(Input) *trace.Trace {
	return func(in Input) *trace.Trace { return fn(in.Graph, in.Start, in.Goal) }
}

func matching(fn func(string, string) *trace.Trace) func(Input) *trace.Trace {
	return func(in Input) *trace.Trace { return fn(in.Text, in.Pattern) }
}

func pair(fn func(string, string) *trace.Trace) func(Input) *trace.Trace {
	return func(in Input) *trace.Trace { return fn(in.A, in.B) }
}

var table = [numKinds]entry{
	LinearSearch:  {generators.NameLinearSearch, FamilySearch, stats.Complexity{Time: "O(n)", Space: "O(1)"}, searchFields, search(generators.LinearSearch)},
	BinarySearch:  {generators.NameBinarySearch, FamilySearch, stats.Complexity{Time: "O(log n)", Space: "O(1)"}, searchFields, search(generators.BinarySearch)},
	JumpSearch:    {generators.NameJumpSearch, FamilySearch, stats.Complexity{Time: "O(√n)", Space: "O(1)"}, searchFields, search(generators.JumpSearch)},
	TernarySearch: {generators.NameTernarySearch, FamilySearch, stats.Complexity{Time: "O(log₃ n)", Space: "O(1)"}, searchFields, search(generators.TernarySearch)},

	BubbleSort:    {generators.NameBubbleSort, FamilySort, stats.Complexity{Time: "O(n²)", Space: "O(1)"}, sortFields, sorting(generators.BubbleSort)},
	SelectionSort: {generators.NameSelectionSort, FamilySort, stats.Complexity{Time: "O(n²)", Space: "O(1)"}, sortFields, sorting(generators.SelectionSort)},
	InsertionSort: {generators.NameInsertionSort, FamilySort, stats.Complexity{Time: "O(n²)", Space: "O(1)"}, sortFields, sorting(generators.InsertionSort)},
	QuickSort:     {generators.NameQuickSort, FamilySort, stats.Complexity{Time: "O(n log n) avg, O(n²) worst", Space: "O(log n)"}, sortFields, sorting(generators.QuickSort)},

	BFS: {generators.NameBFS, FamilyGraph, stats.Complexity{Time: "O(V + E)", Space: "O(V)"}, graphFields, traversal(generators.BFS)},
	DFS: {generators.NameDFS, FamilyGraph, stats.Complexity{Time: "O(V + E)", Space: "O(V)"}, graphFields, traversal(generators.DFS)},
	Prim: {generators.NamePrim, FamilyGraph, stats.Complexity{Time: "O(V²)", Space: "O(V)"}, []string{"graph", "start"},
		func(in Input) *trace.Trace { return generators.Prim(in.Graph, in.Start) }},
	Dijkstra: {generators.NameDijkstra, FamilyGraph, stats.Complexity{Time: "O(V²)", Space: "O(V)"}, graphFields, traversal(generators.Dijkstra)},

	NaiveMatch: {generators.NameNaiveMatch, FamilyString, stats.Complexity{Time: "O(n·m)", Space: "O(1)"}, stringFields, matching(generators.NaiveMatch)},
	KMP:        {generators.NameKMP, FamilyString, stats.Complexity{Time: "O(n + m)", Space: "O(m)"}, stringFields, matching(generators.KMP)},
	RabinKarp:  {generators.NameRabinKarp, FamilyString, stats.Complexity{Time: "O(n + m) avg, O(n·m) worst", Space: "O(1)"}, stringFields, matching(generators.RabinKarp)},

	Fibonacci: {generators.NameFibonacci, FamilyDP, stats.Complexity{Time: "O(n)", Space: "O(n)"}, []string{"n"},
		func(in Input) *trace.Trace { return generators.Fibonacci(in.N) }},
	LCS:          {generators.NameLCS, FamilyDP, stats.Complexity{Time: "O(n·m)", Space: "O(n·m)"}, pairFields, pair(generators.LCS)},
	EditDistance: {generators.NameEditDistance, FamilyDP, stats.Complexity{Time: "O(n·m)", Space: "O(n·m)"}, pairFields, pair(generators.EditDistance)},
	Knapsack: {generators.NameKnapsack, FamilyDP, stats.Complexity{Time: "O(n·W)", Space: "O(n·W)"}, []string{"weights", "values", "capacity"},
		func(in Input) *trace.Trace { return generators.Knapsack(in.Weights, in.Values, in.Capacity) }},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := range numKinds {
		m[table[k].name] = k
	}
	return m
}()

func (k Kind) valid() bool { return k >= 0 && k < numKinds }

// String returns the slug, e.g. "binary-search".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return table[k].name
}

func (k Kind) Family() Family {
	if !k.valid() {
		return ""
	}
	return table[k].family
}

func (k Kind) Complexity() stats.Complexity {
	if !k.valid() {
		return stats.Complexity{}
	}
	return table[k].complexity
}

// Fields lists the input parameters the generator reads.
func (k Kind) Fields() []string {
	if !k.valid() {
		return nil
	}
	return append([]string(nil), table[k].fields...)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(k))
	}
	return []byte(table[k].name), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func Parse(name string) (Kind, error) {
	k, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return k, nil
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for k := range numKinds {
		out[k] = k
	}
	return out
}

// Generate runs the generator for k. An out-of-range kind yields a single
// invalid step rather than a panic.
func Generate(k Kind, in Input) *trace.Trace {
	if !k.valid() {
		return trace.Single(k.String(), "unknown algorithm kind")
	}
	return table[k].generate(in)
}
