package generators

import (
	"fmt"
	"slices"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	NameFibonacci    = "fibonacci"
	NameLCS          = "lcs"
	NameEditDistance = "edit-distance"
	NameKnapsack     = "knapsack"
)

// MaxFibonacci is the largest n whose value fits in an int64.
const MaxFibonacci = 90

// MaxTableCells bounds the 2-D tables. Every step carries a full copy of the
// table, so a trace holds roughly MaxTableCells squared values at most.
const MaxTableCells = 2048

// tableTooLarge reports why an (m+1) x (n+1) table is rejected, or "".
func tableTooLarge(m, n int) string {
	if m >= MaxTableCells || n >= MaxTableCells || (m+1)*(n+1) > MaxTableCells {
		return fmt.Sprintf("table of %d x %d cells exceeds %d", m+1, n+1, MaxTableCells)
	}
	return ""
}

// table is a DP table that is copied in full into every step.
type table struct {
	b    *trace.Builder
	rows [][]int
}

func newTable(name string, rows, cols int) *table {
	t := &table{b: trace.NewBuilder(name), rows: make([][]int, rows)}
	for i := range t.rows {
		t.rows[i] = make([]int, cols)
	}
	return t
}

func (t *table) emit(id, desc string, written ...trace.Cell) {
	t.b.Emit(trace.Step{
		ID:          id,
		Description: desc,
		Data: trace.Data{Table: &trace.TableState{
			Rows:    trace.CloneTable(t.rows),
			Written: slices.Clone(written),
		}},
	})
}

func (t *table) write(r, c, v int, desc string) {
	t.rows[r][c] = v
	t.b.Access(1)
	t.emit(fmt.Sprintf("cell-%d-%d", r, c), desc, trace.Cell{Row: r, Col: c})
}

func (t *table) finish(value int, desc string) *trace.Trace {
	t.b.Emit(trace.Step{
		ID:          "complete",
		Description: desc,
		Data: trace.Data{
			Table:  &trace.TableState{Rows: trace.CloneTable(t.rows)},
			Result: &trace.Result{Outcome: trace.OutcomeComplete, Index: -1, Value: value},
		},
	})
	return t.b.Build()
}

// Fibonacci fills fib[0..n] bottom-up in a single-row table.
func Fibonacci(n int) *trace.Trace {
	if n < 0 || n > MaxFibonacci {
		return trace.Single(NameFibonacci, fmt.Sprintf("n = %d not in [0, %d]", n, MaxFibonacci))
	}
	t := newTable(NameFibonacci, 1, n+1)
	t.emit("init", fmt.Sprintf("tabulate fib(0..%d)", n))

	t.write(0, 0, 0, "fib(0) = 0")
	if n >= 1 {
		t.write(0, 1, 1, "fib(1) = 1")
	}
	row := t.rows[0]
	for i := 2; i <= n; i++ {
		t.b.Access(2)
		t.write(0, i, row[i-1]+row[i-2], fmt.Sprintf("fib(%d) = fib(%d) + fib(%d) = %d + %d", i, i-1, i-2, row[i-1], row[i-2]))
	}
	return t.finish(row[n], fmt.Sprintf("fib(%d) = %d", n, row[n]))
}

// LCS fills the longest-common-subsequence table of a and b.
func LCS(a, b string) *trace.Trace {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)
	if why := tableTooLarge(m, n); why != "" {
		return trace.Single(NameLCS, why)
	}
	t := newTable(NameLCS, m+1, n+1)
	t.emit("init", fmt.Sprintf("longest common subsequence of %q and %q", a, b))

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			t.b.Compare(1)
			t.b.Access(2)
			if ra[i-1] == rb[j-1] {
				v := t.rows[i-1][j-1] + 1
				t.write(i, j, v, fmt.Sprintf("%q == %q: dp[%d][%d] = dp[%d][%d] + 1 = %d", ra[i-1], rb[j-1], i, j, i-1, j-1, v))
				continue
			}
			v := max(t.rows[i-1][j], t.rows[i][j-1])
			t.write(i, j, v, fmt.Sprintf("%q != %q: dp[%d][%d] = max(%d, %d) = %d", ra[i-1], rb[j-1], i, j, t.rows[i-1][j], t.rows[i][j-1], v))
		}
	}

	lcs := backtrackLCS(t.rows, ra, rb)
	return t.finish(t.rows[m][n], fmt.Sprintf("LCS length %d (%q)", t.rows[m][n], lcs))
}

func backtrackLCS(dp [][]int, a, b []rune) string {
	var out []rune
	i, j := len(a), len(b)
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			out = append(out, a[i-1])
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	slices.Reverse(out)
	return string(out)
}

// EditDistance fills the Levenshtein table turning a into b.
func EditDistance(a, b string) *trace.Trace {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)
	if why := tableTooLarge(m, n); why != "" {
		return trace.Single(NameEditDistance, why)
	}
	t := newTable(NameEditDistance, m+1, n+1)
	t.emit("init", fmt.Sprintf("edit distance from %q to %q", a, b))

	for i := 0; i <= m; i++ {
		for j := 0; j <= n; j++ {
			switch {
			case i == 0:
				t.write(i, j, j, fmt.Sprintf("dp[0][%d] = %d insertions", j, j))
			case j == 0:
				t.write(i, j, i, fmt.Sprintf("dp[%d][0] = %d deletions", i, i))
			default:
				t.b.Compare(1)
				t.b.Access(3)
				if ra[i-1] == rb[j-1] {
					v := t.rows[i-1][j-1]
					t.write(i, j, v, fmt.Sprintf("%q == %q: dp[%d][%d] = %d", ra[i-1], rb[j-1], i, j, v))
					continue
				}
				v := 1 + min(t.rows[i][j-1], t.rows[i-1][j], t.rows[i-1][j-1])
				t.write(i, j, v, fmt.Sprintf("%q != %q: dp[%d][%d] = 1 + min(insert %d, delete %d, replace %d) = %d",
					ra[i-1], rb[j-1], i, j, t.rows[i][j-1], t.rows[i-1][j], t.rows[i-1][j-1], v))
			}
		}
	}
	return t.finish(t.rows[m][n], fmt.Sprintf("edit distance %d", t.rows[m][n]))
}

// Knapsack fills the 0/1 knapsack table: dp[i][w] is the best value using the
// first i items within capacity w.
func Knapsack(weights, values []int, capacity int) *trace.Trace {
	switch {
	case len(weights) != len(values):
		return trace.Single(NameKnapsack, fmt.Sprintf("%d weights but %d values", len(weights), len(values)))
	case capacity < 0:
		return trace.Single(NameKnapsack, fmt.Sprintf("negative capacity %d", capacity))
	}
	for i, w := range weights {
		if w < 0 {
			return trace.Single(NameKnapsack, fmt.Sprintf("item %d has negative weight %d", i, w))
		}
	}

	n := len(weights)
	if why := tableTooLarge(n, capacity); why != "" {
		return trace.Single(NameKnapsack, why)
	}
	t := newTable(NameKnapsack, n+1, capacity+1)
	t.emit("init", fmt.Sprintf("0/1 knapsack of %d items, capacity %d", n, capacity))
	if n == 0 {
		t.b.Emit(trace.Step{
			ID:          "empty",
			Description: "no items",
			Data: trace.Data{
				Table:  &trace.TableState{Rows: trace.CloneTable(t.rows)},
				Result: &trace.Result{Outcome: trace.OutcomeEmpty, Index: -1},
			},
		})
		return t.b.Build()
	}

	for i := 1; i <= n; i++ {
		wt, val := weights[i-1], values[i-1]
		for w := 0; w <= capacity; w++ {
			skip := t.rows[i-1][w]
			t.b.Access(1)
			if wt > w {
				t.write(i, w, skip, fmt.Sprintf("item %d (w=%d) does not fit in %d: dp[%d][%d] = %d", i, wt, w, i, w, skip))
				continue
			}
			t.b.Compare(1)
			t.b.Access(1)
			take := t.rows[i-1][w-wt] + val
			v := max(skip, take)
			t.write(i, w, v, fmt.Sprintf("dp[%d][%d] = max(skip %d, take %d) = %d", i, w, skip, take, v))
		}
	}
	return t.finish(t.rows[n][capacity], fmt.Sprintf("best value %d", t.rows[n][capacity]))
}
