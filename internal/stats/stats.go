// Package stats projects the statistics panel shown next to a playing trace.
//
// [Project] reads the counters already stamped into a step, so it is O(1) no
// matter where playback is. [Series] is the one full scan, used for plots and
// CSV export.
package stats

import "github.com/san-kum/algotrace/internal/trace"

// Complexity is the static asymptotic cost of an algorithm.
type Complexity struct {
	Time  string `json:"time" yaml:"time"`
	Space string `json:"space" yaml:"space"`
}

type Stats struct {
	Comparisons int        `json:"comparisons"`
	Swaps       int        `json:"swaps"`
	Accesses    int        `json:"accesses"`
	Complexity  Complexity `json:"complexity"`
}

func Project(s trace.Step, c Complexity) Stats {
	return Stats{
		Comparisons: s.Data.Comparisons,
		Swaps:       s.Data.Swaps,
		Accesses:    s.Data.Accesses,
		Complexity:  c,
	}
}

// Columns holds one value per step for each counter.
type Columns struct {
	Comparisons []float64
	Swaps       []float64
	Accesses    []float64
}

func (c Columns) Len() int { return len(c.Comparisons) }

func Series(tr *trace.Trace) Columns {
	n := tr.Len()
	cols := Columns{
		Comparisons: make([]float64, n),
		Swaps:       make([]float64, n),
		Accesses:    make([]float64, n),
	}
	for i := range n {
		c := tr.At(i).Data.Counters
		cols.Comparisons[i] = float64(c.Comparisons)
		cols.Swaps[i] = float64(c.Swaps)
		cols.Accesses[i] = float64(c.Accesses)
	}
	return cols
}
