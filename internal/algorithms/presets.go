package algorithms

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/algotrace/internal/generators"
	"github.com/san-kum/algotrace/internal/trace"
)

// DefaultPreset exists for every kind.
const DefaultPreset = "default"

var sampleGraph = generators.Graph{N: 6, Edges: []trace.Edge{
	{From: 0, To: 1, Weight: 4},
	{From: 0, To: 2, Weight: 1},
	{From: 2, To: 1, Weight: 2},
	{From: 1, To: 3, Weight: 5},
	{From: 2, To: 3, Weight: 8},
	{From: 2, To: 4, Weight: 10},
	{From: 3, To: 4, Weight: 2},
	{From: 4, To: 5, Weight: 3},
	{From: 3, To: 5, Weight: 6},
}}

var (
	sortDefault    = []int{5, 1, 4, 2, 8, 3, 7, 6}
	sortReversed   = []int{9, 8, 7, 6, 5, 4, 3, 2, 1}
	sortDuplicates = []int{3, 1, 3, 1, 2, 2, 5, 0}
	sortedSample   = []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23}
)

func sortPresets() map[string]Input {
	return map[string]Input{
		DefaultPreset: {Array: sortDefault, Goal: -1},
		"reversed":    {Array: sortReversed, Goal: -1},
		"duplicates":  {Array: sortDuplicates, Goal: -1},
		"sorted":      {Array: []int{1, 2, 3, 4, 5, 6}, Goal: -1},
	}
}

func graphPresets(goal int) map[string]Input {
	return map[string]Input{
		DefaultPreset: {Graph: sampleGraph, Start: 0, Goal: goal},
		"disconnected": {Graph: generators.Graph{N: 5, Edges: []trace.Edge{
			{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: 1}, {From: 3, To: 4, Weight: 1},
		}}, Start: 0, Goal: 4},
		"directed": {Graph: generators.Graph{N: 4, Directed: true, Edges: []trace.Edge{
			{From: 0, To: 1, Weight: 2}, {From: 1, To: 2, Weight: 2}, {From: 2, To: 0, Weight: 2}, {From: 2, To: 3, Weight: 1},
		}}, Start: 0, Goal: 3},
	}
}

func stringPresets() map[string]Input {
	return map[string]Input{
		DefaultPreset: {Text: "ABABDABACDABABCABAB", Pattern: "ABABCABAB", Goal: -1},
		"repeats":     {Text: "AABAACAADAABAABA", Pattern: "AABA", Goal: -1},
		"absent":      {Text: "the quick brown fox", Pattern: "cat", Goal: -1},
	}
}

var presets = map[Kind]map[string]Input{
	LinearSearch: {
		DefaultPreset: {Array: []int{7, 2, 9, 4, 1, 8, 3}, Target: 8, Goal: -1},
		"scenario-a":  {Array: []int{5, 3, 8, 1}, Target: 8, Goal: -1},
		"missing":     {Array: []int{4, 2, 7}, Target: 9, Goal: -1},
	},
	BinarySearch: {
		DefaultPreset: {Array: sortedSample, Target: 17, Goal: -1},
		"scenario-b":  {Array: []int{1, 3, 5, 7, 9, 11}, Target: 7, Goal: -1},
		"scenario-c":  {Array: []int{2, 4, 6}, Target: 5, Goal: -1},
	},
	JumpSearch: {
		DefaultPreset: {Array: sortedSample, Target: 15, Goal: -1},
		"missing":     {Array: sortedSample, Target: 16, Goal: -1},
	},
	TernarySearch: {
		DefaultPreset: {Array: sortedSample, Target: 19, Goal: -1},
		"missing":     {Array: sortedSample, Target: 2, Goal: -1},
	},

	BubbleSort:    sortPresets(),
	SelectionSort: sortPresets(),
	InsertionSort: sortPresets(),
	QuickSort:     sortPresets(),

	BFS:      graphPresets(5),
	DFS:      graphPresets(5),
	Prim:     graphPresets(-1),
	Dijkstra: graphPresets(5),

	NaiveMatch: stringPresets(),
	KMP:        stringPresets(),
	RabinKarp:  stringPresets(),

	Fibonacci: {
		DefaultPreset: {N: 10, Goal: -1},
		"large":       {N: 40, Goal: -1},
	},
	LCS: {
		DefaultPreset: {A: "ABCBDAB", B: "BDCABA", Goal: -1},
		"dna":         {A: "AGGTAB", B: "GXTXAYB", Goal: -1},
	},
	EditDistance: {
		DefaultPreset: {A: "kitten", B: "sitting", Goal: -1},
		"days":        {A: "sunday", B: "saturday", Goal: -1},
	},
	Knapsack: {
		DefaultPreset: {Weights: []int{1, 3, 4, 5}, Values: []int{1, 4, 5, 7}, Capacity: 7, Goal: -1},
		"classic":     {Weights: []int{10, 20, 30}, Values: []int{60, 100, 120}, Capacity: 50, Goal: -1},
	},
}

// Presets lists the preset names of k in sorted order.
func Presets(k Kind) []string {
	return slices.Sorted(maps.Keys(presets[k]))
}

// Preset returns a private copy of the named input.
func Preset(k Kind, name string) (Input, error) {
	in, ok := presets[k][name]
	if !ok {
		return Input{}, fmt.Errorf("%w: %s has no preset %q", ErrUnknownPreset, k, name)
	}
	return in.Clone(), nil
}
