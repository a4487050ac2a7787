package generators

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	NameBFS      = "bfs"
	NameDFS      = "dfs"
	NamePrim     = "prim"
	NameDijkstra = "dijkstra"
)

const unreachable = math.MaxInt

// Graph is an arena of vertices 0..N-1. Edges refer to vertices by id only.
type Graph struct {
	N        int          `mapstructure:"n" yaml:"n"`
	Edges    []trace.Edge `mapstructure:"edges" yaml:"edges"`
	Directed bool         `mapstructure:"directed" yaml:"directed"`
}

type arc struct{ to, w int }

// validate reports why g cannot be traversed from start towards goal, or "".
// A negative goal means there is none.
func (g Graph) validate(start, goal int, weighted bool) string {
	if g.N <= 0 {
		return "graph has no vertices"
	}
	if start < 0 || start >= g.N {
		return fmt.Sprintf("start vertex %d not in [0, %d]", start, g.N-1)
	}
	if goal >= g.N {
		return fmt.Sprintf("goal vertex %d not in [0, %d]", goal, g.N-1)
	}
	for _, e := range g.Edges {
		if e.From < 0 || e.From >= g.N || e.To < 0 || e.To >= g.N {
			return fmt.Sprintf("edge %d-%d references a missing vertex", e.From, e.To)
		}
		if weighted && e.Weight < 0 {
			return fmt.Sprintf("edge %d-%d has negative weight %d", e.From, e.To, e.Weight)
		}
		if weighted && e.Weight == unreachable {
			return fmt.Sprintf("edge %d-%d weight is too large", e.From, e.To)
		}
	}
	return ""
}

// adjacency builds sorted neighbor lists so traversal order is deterministic.
func (g Graph) adjacency(undirected bool) [][]arc {
	adj := make([][]arc, g.N)
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], arc{e.To, e.Weight})
		if undirected && e.From != e.To {
			adj[e.To] = append(adj[e.To], arc{e.From, e.Weight})
		}
	}
	for _, a := range adj {
		slices.SortFunc(a, func(x, y arc) int {
			if c := cmp.Compare(x.to, y.to); c != 0 {
				return c
			}
			return cmp.Compare(x.w, y.w)
		})
	}
	return adj
}

// walk holds the bookkeeping shared by the graph generators.
type walk struct {
	b       *trace.Builder
	visited []int
	done    []bool
	parent  []int
}

func newWalk(name string, n int) *walk {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return &walk{b: trace.NewBuilder(name), done: make([]bool, n), parent: parent}
}

func (w *walk) state(current int, frontier []int) *trace.GraphState {
	return &trace.GraphState{
		Current:  current,
		Visited:  trace.CloneInts(w.visited),
		Frontier: trace.CloneInts(frontier),
	}
}

func (w *walk) visit(u int) {
	w.done[u] = true
	w.visited = append(w.visited, u)
}

// pathTo follows parent links from goal back to the root.
func (w *walk) pathTo(goal int) []int {
	var path []int
	for v := goal; v != -1; v = w.parent[v] {
		path = append(path, v)
	}
	slices.Reverse(path)
	return path
}

// terminal emits the closing step; when goal >= 0 the outcome reports whether
// goal was reached and the path to it.
func (w *walk) terminal(gs *trace.GraphState, goal int, what string, value int) {
	res := &trace.Result{Outcome: trace.OutcomeComplete, Index: -1, Value: value}
	desc := fmt.Sprintf("%s complete, %d vertices processed", what, len(w.visited))
	if goal >= 0 && goal < len(w.done) {
		if w.done[goal] {
			gs.Path = w.pathTo(goal)
			res.Outcome = trace.OutcomeFound
			res.Index = goal
			desc = fmt.Sprintf("%s reached %d via %v", what, goal, gs.Path)
		} else {
			res.Outcome = trace.OutcomeNotFound
			desc = fmt.Sprintf("%s finished without reaching %d", what, goal)
		}
	}
	w.b.Emit(trace.Step{
		ID:          "complete",
		Description: desc,
		Highlighted: gs.Path,
		Data:        trace.Data{Graph: gs, Result: res},
	})
}

// BFS explores vertices in order of hop distance from start. Goal < 0 means
// no goal; otherwise the terminal step carries the shortest hop path.
func BFS(g Graph, start, goal int) *trace.Trace {
	if why := g.validate(start, goal, false); why != "" {
		return trace.Single(NameBFS, why)
	}
	adj := g.adjacency(!g.Directed)
	w := newWalk(NameBFS, g.N)
	seen := make([]bool, g.N)
	seen[start] = true
	queue := []int{start}

	w.b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("breadth-first search from %d", start),
		Data:        trace.Data{Graph: w.state(-1, queue)},
	})

	// Every vertex enters the queue at most once.
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		w.visit(u)
		w.b.Emit(trace.Step{
			ID:          fmt.Sprintf("visit-%d", u),
			Description: fmt.Sprintf("dequeue and visit %d", u),
			Highlighted: []int{u},
			Current:     trace.Int(u),
			Data:        trace.Data{Graph: w.state(u, queue)},
		})
		for _, a := range adj[u] {
			w.b.Compare(1)
			if seen[a.to] {
				continue
			}
			seen[a.to] = true
			w.parent[a.to] = u
			queue = append(queue, a.to)
			w.b.Emit(trace.Step{
				ID:          fmt.Sprintf("discover-%d-%d", u, a.to),
				Description: fmt.Sprintf("discover %d from %d, enqueue it", a.to, u),
				Compared:    []int{u, a.to},
				Current:     trace.Int(u),
				Data:        trace.Data{Graph: w.state(u, queue)},
			})
		}
	}

	w.terminal(w.state(-1, nil), goal, "BFS", len(w.visited))
	return w.b.Build()
}

// DFS explores depth-first with an explicit stack. Neighbors are pushed in
// reverse so the smallest id is explored first.
func DFS(g Graph, start, goal int) *trace.Trace {
	if why := g.validate(start, goal, false); why != "" {
		return trace.Single(NameDFS, why)
	}
	adj := g.adjacency(!g.Directed)
	w := newWalk(NameDFS, g.N)
	stack := []int{start}

	w.b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("depth-first search from %d", start),
		Data:        trace.Data{Graph: w.state(-1, stack)},
	})

	// Pushes are bounded by the number of arcs, and each pop either visits a
	// new vertex or discards a duplicate.
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.done[u] {
			continue
		}
		w.visit(u)
		w.b.Emit(trace.Step{
			ID:          fmt.Sprintf("visit-%d", u),
			Description: fmt.Sprintf("pop and visit %d", u),
			Highlighted: []int{u},
			Current:     trace.Int(u),
			Data:        trace.Data{Graph: w.state(u, stack)},
		})
		for i := len(adj[u]) - 1; i >= 0; i-- {
			v := adj[u][i].to
			w.b.Compare(1)
			if w.done[v] {
				continue
			}
			w.parent[v] = u
			stack = append(stack, v)
			w.b.Emit(trace.Step{
				ID:          fmt.Sprintf("push-%d-%d", u, v),
				Description: fmt.Sprintf("push neighbor %d of %d", v, u),
				Compared:    []int{u, v},
				Current:     trace.Int(u),
				Data:        trace.Data{Graph: w.state(u, stack)},
			})
		}
	}

	w.terminal(w.state(-1, nil), goal, "DFS", len(w.visited))
	return w.b.Build()
}

// pickMin returns the unfinished vertex with the smallest key, ties broken by
// id, or -1 when every remaining vertex is unreachable.
func pickMin(b *trace.Builder, key []int, done []bool) int {
	u := -1
	for v := range key {
		if done[v] || key[v] == unreachable {
			continue
		}
		b.Compare(1)
		if u == -1 || key[v] < key[u] {
			u = v
		}
	}
	return u
}

func pending(key []int, done []bool) []int {
	out := []int{}
	for v := range key {
		if !done[v] && key[v] != unreachable {
			out = append(out, v)
		}
	}
	return out
}

func distances(key []int) []int {
	out := make([]int, len(key))
	for i, k := range key {
		if k == unreachable {
			out[i] = -1
		} else {
			out[i] = k
		}
	}
	return out
}

// Prim grows a minimum spanning tree of start's component. Edges are treated
// as undirected. Each round finishes one vertex, so there are at most N rounds.
func Prim(g Graph, start int) *trace.Trace {
	if why := g.validate(start, -1, true); why != "" {
		return trace.Single(NamePrim, why)
	}
	adj := g.adjacency(true)
	w := newWalk(NamePrim, g.N)
	key := make([]int, g.N)
	for i := range key {
		key[i] = unreachable
	}
	key[start] = 0
	var mst []trace.Edge
	total := 0

	snapshot := func(current int) *trace.GraphState {
		gs := w.state(current, pending(key, w.done))
		gs.MSTEdges = slices.Clone(mst)
		gs.Distances = distances(key)
		return gs
	}

	w.b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("grow a minimum spanning tree from %d", start),
		Data:        trace.Data{Graph: snapshot(-1)},
	})

	for range g.N {
		u := pickMin(w.b, key, w.done)
		if u == -1 {
			break
		}
		w.visit(u)
		if p := w.parent[u]; p != -1 {
			mst = append(mst, trace.Edge{From: p, To: u, Weight: key[u]})
			total += key[u]
		}
		w.b.Emit(trace.Step{
			ID:          fmt.Sprintf("pick-%d", u),
			Description: fmt.Sprintf("add %d to the tree with key %d", u, key[u]),
			Highlighted: []int{u},
			Current:     trace.Int(u),
			Data:        trace.Data{Graph: snapshot(u)},
		})
		for _, a := range adj[u] {
			w.b.Compare(1)
			if w.done[a.to] || a.w >= key[a.to] {
				continue
			}
			key[a.to] = a.w
			w.parent[a.to] = u
			w.b.Emit(trace.Step{
				ID:          fmt.Sprintf("update-%d-%d", u, a.to),
				Description: fmt.Sprintf("key of %d lowered to %d via %d", a.to, a.w, u),
				Compared:    []int{u, a.to},
				Current:     trace.Int(u),
				Data:        trace.Data{Graph: snapshot(u)},
			})
		}
	}

	gs := snapshot(-1)
	w.b.Emit(trace.Step{
		ID:          "complete",
		Description: fmt.Sprintf("spanning tree of %d vertices, total weight %d", len(w.visited), total),
		Data: trace.Data{Graph: gs, Result: &trace.Result{
			Outcome: trace.OutcomeComplete,
			Index:   -1,
			Value:   total,
		}},
	})
	return w.b.Build()
}

// Dijkstra computes single-source shortest paths over non-negative weights.
// Goal < 0 means no goal; otherwise the terminal step carries the path.
func Dijkstra(g Graph, start, goal int) *trace.Trace {
	if why := g.validate(start, goal, true); why != "" {
		return trace.Single(NameDijkstra, why)
	}
	adj := g.adjacency(!g.Directed)
	w := newWalk(NameDijkstra, g.N)
	dist := make([]int, g.N)
	for i := range dist {
		dist[i] = unreachable
	}
	dist[start] = 0

	snapshot := func(current int) *trace.GraphState {
		gs := w.state(current, pending(dist, w.done))
		gs.Distances = distances(dist)
		return gs
	}

	w.b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("shortest paths from %d", start),
		Data:        trace.Data{Graph: snapshot(-1)},
	})

	for range g.N {
		u := pickMin(w.b, dist, w.done)
		if u == -1 {
			break
		}
		w.visit(u)
		w.b.Emit(trace.Step{
			ID:          fmt.Sprintf("settle-%d", u),
			Description: fmt.Sprintf("settle %d at distance %d", u, dist[u]),
			Highlighted: []int{u},
			Current:     trace.Int(u),
			Data:        trace.Data{Graph: snapshot(u)},
		})
		for _, a := range adj[u] {
			w.b.Compare(1)
			// Compared as a difference so dist[u]+a.w cannot overflow.
			if w.done[a.to] || a.w >= dist[a.to]-dist[u] {
				continue
			}
			dist[a.to] = dist[u] + a.w
			w.parent[a.to] = u
			w.b.Emit(trace.Step{
				ID:          fmt.Sprintf("relax-%d-%d", u, a.to),
				Description: fmt.Sprintf("distance to %d lowered to %d via %d", a.to, dist[a.to], u),
				Compared:    []int{u, a.to},
				Current:     trace.Int(u),
				Data:        trace.Data{Graph: snapshot(u)},
			})
		}
	}

	value := 0
	if goal >= 0 && dist[goal] != unreachable {
		value = dist[goal]
	}
	w.terminal(snapshot(-1), goal, "Dijkstra", value)
	return w.b.Build()
}
