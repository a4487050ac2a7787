// Package generators runs algorithms to completion and records every
// inspectable intermediate state as a [trace.Trace].
//
// One pure function exists per algorithm, grouped by family:
//
//   - search: [LinearSearch], [BinarySearch], [JumpSearch], [TernarySearch]
//   - sort: [BubbleSort], [SelectionSort], [InsertionSort], [QuickSort]
//   - graph: [BFS], [DFS], [Prim], [Dijkstra]
//   - string matching: [NaiveMatch], [KMP], [RabinKarp]
//   - tabulation: [Fibonacci], [LCS], [EditDistance], [Knapsack]
//
// Generators never fail. Malformed input produces a trace holding a single
// terminal invalid step, and empty input produces an initial step followed by
// a terminal empty or not-found step. Inputs are never modified.
//
// Divide-and-conquer searches trust that their input is sorted.
package generators
