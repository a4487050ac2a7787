package generators

import (
	"fmt"
	"slices"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	NameBubbleSort    = "bubble-sort"
	NameSelectionSort = "selection-sort"
	NameInsertionSort = "insertion-sort"
	NameQuickSort     = "quick-sort"
)

// sorter carries the working copy shared by all comparison sorts.
type sorter struct {
	b      *trace.Builder
	arr    []int
	sorted []bool
}

func newSorter(name string, input []int) *sorter {
	return &sorter{
		b:      trace.NewBuilder(name),
		arr:    slices.Clone(input),
		sorted: make([]bool, len(input)),
	}
}

func (s *sorter) sortedIndices() []int {
	out := make([]int, 0, len(s.sorted))
	for i, ok := range s.sorted {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func (s *sorter) emit(st trace.Step) {
	st.Sorted = s.sortedIndices()
	st.Data.Array = s.arr
	s.b.Emit(st)
}

// compare records a comparison of arr[i] and arr[j].
func (s *sorter) compare(id string, i, j int) {
	s.b.Compare(1)
	s.b.Access(2)
	s.emit(trace.Step{
		ID:          id,
		Description: fmt.Sprintf("compare arr[%d] = %d with arr[%d] = %d", i, s.arr[i], j, s.arr[j]),
		Compared:    []int{i, j},
	})
}

func (s *sorter) swap(id string, i, j int) {
	s.arr[i], s.arr[j] = s.arr[j], s.arr[i]
	s.b.Swap(1)
	s.b.Access(2)
	s.emit(trace.Step{
		ID:          id,
		Description: fmt.Sprintf("swap arr[%d] and arr[%d] -> %d, %d", i, j, s.arr[i], s.arr[j]),
		Swapped:     []int{i, j},
	})
}

func (s *sorter) finalize(id string, idx ...int) {
	for _, i := range idx {
		s.sorted[i] = true
	}
	s.emit(trace.Step{
		ID:          id,
		Description: fmt.Sprintf("index %v is in its final position", idx),
		Highlighted: idx,
	})
}

// start emits the initial step. It reports false after emitting the terminal
// empty step when there is nothing to sort.
func (s *sorter) start(what string) bool {
	s.emit(trace.Step{ID: "init", Description: "start " + what})
	if len(s.arr) > 0 {
		return true
	}
	s.emit(trace.Step{
		ID:          "empty",
		Description: "nothing to sort",
		Data:        trace.Data{Result: &trace.Result{Outcome: trace.OutcomeEmpty, Index: -1}},
	})
	return false
}

func (s *sorter) finish() *trace.Trace {
	for i := range s.sorted {
		s.sorted[i] = true
	}
	s.emit(trace.Step{
		ID:          "complete",
		Description: fmt.Sprintf("sorted: %v", s.arr),
		Data:        trace.Data{Result: &trace.Result{Outcome: trace.OutcomeSorted, Index: -1}},
	})
	return s.b.Build()
}

// BubbleSort swaps adjacent out-of-order pairs; each pass fixes the largest
// remaining element at the end and a pass without swaps ends the sort.
func BubbleSort(input []int) *trace.Trace {
	s := newSorter(NameBubbleSort, input)
	if !s.start("bubble sort") {
		return s.b.Build()
	}
	n := len(s.arr)

	for i := 0; i < n-1; i++ {
		s.emit(trace.Step{
			ID:          fmt.Sprintf("pass-%d", i),
			Description: fmt.Sprintf("pass %d: bubble the largest element to index %d", i+1, n-1-i),
			Data:        trace.Data{Vars: map[string]int{"pass": i + 1}},
		})
		swapped := false
		for j := 0; j < n-1-i; j++ {
			s.compare(fmt.Sprintf("compare-%d-%d", i, j), j, j+1)
			if s.arr[j] > s.arr[j+1] {
				s.swap(fmt.Sprintf("swap-%d-%d", i, j), j, j+1)
				swapped = true
			}
		}
		if !swapped {
			s.finalize("early-exit", trace.Range(0, n-1-i)...)
			break
		}
		s.finalize(fmt.Sprintf("sorted-%d", n-1-i), n-1-i)
	}
	return s.finish()
}

// SelectionSort moves the minimum of the unsorted suffix to its front.
func SelectionSort(input []int) *trace.Trace {
	s := newSorter(NameSelectionSort, input)
	if !s.start("selection sort") {
		return s.b.Build()
	}
	n := len(s.arr)

	for i := 0; i < n-1; i++ {
		minIdx := i
		s.emit(trace.Step{
			ID:          fmt.Sprintf("select-%d", i),
			Description: fmt.Sprintf("find the minimum of arr[%d..%d]", i, n-1),
			Highlighted: []int{i},
			Current:     trace.Int(i),
			Data:        trace.Data{Vars: map[string]int{"min": minIdx}},
		})
		for j := i + 1; j < n; j++ {
			s.compare(fmt.Sprintf("compare-%d-%d", i, j), minIdx, j)
			if s.arr[j] < s.arr[minIdx] {
				minIdx = j
				s.emit(trace.Step{
					ID:          fmt.Sprintf("min-%d-%d", i, j),
					Description: fmt.Sprintf("new minimum %d at index %d", s.arr[j], j),
					Highlighted: []int{j},
					Current:     trace.Int(j),
					Data:        trace.Data{Vars: map[string]int{"min": minIdx}},
				})
			}
		}
		// minIdx only moves on a strictly smaller value, so the swap is never a no-op.
		if minIdx != i {
			s.swap(fmt.Sprintf("swap-%d", i), i, minIdx)
		}
		s.finalize(fmt.Sprintf("sorted-%d", i), i)
	}
	return s.finish()
}

// InsertionSort sinks each element into the sorted prefix by adjacent swaps.
// Sorted reports the prefix that is in order, which only grows.
func InsertionSort(input []int) *trace.Trace {
	s := newSorter(NameInsertionSort, input)
	if !s.start("insertion sort") {
		return s.b.Build()
	}
	n := len(s.arr)
	s.sorted[0] = true

	for i := 1; i < n; i++ {
		s.b.Access(1)
		s.emit(trace.Step{
			ID:          fmt.Sprintf("pick-%d", i),
			Description: fmt.Sprintf("insert %d into the sorted prefix arr[0..%d]", s.arr[i], i-1),
			Current:     trace.Int(i),
			Data:        trace.Data{Vars: map[string]int{"key": s.arr[i]}},
		})
		for j := i; j > 0; j-- {
			s.compare(fmt.Sprintf("compare-%d-%d", i, j), j-1, j)
			if s.arr[j-1] <= s.arr[j] {
				break
			}
			s.swap(fmt.Sprintf("swap-%d-%d", i, j), j-1, j)
		}
		s.sorted[i] = true
		s.emit(trace.Step{
			ID:          fmt.Sprintf("prefix-%d", i),
			Description: fmt.Sprintf("arr[0..%d] is in order", i),
			Highlighted: trace.Range(0, i),
		})
	}
	return s.finish()
}

// QuickSort partitions around the last element (Lomuto). Recursion depth is
// bounded by n because every partition fixes its pivot.
func QuickSort(input []int) *trace.Trace {
	s := newSorter(NameQuickSort, input)
	if !s.start("quick sort") {
		return s.b.Build()
	}
	s.quick(0, len(s.arr)-1)
	return s.finish()
}

func (s *sorter) quick(lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		s.finalize(fmt.Sprintf("sorted-%d", lo), lo)
		return
	}
	p := s.partition(lo, hi)
	s.quick(lo, p-1)
	s.quick(p+1, hi)
}

func (s *sorter) partition(lo, hi int) int {
	pivot := s.arr[hi]
	s.b.Access(1)
	s.emit(trace.Step{
		ID:          fmt.Sprintf("pivot-%d-%d", lo, hi),
		Description: fmt.Sprintf("partition arr[%d..%d] around pivot %d", lo, hi, pivot),
		Highlighted: []int{hi},
		Current:     trace.Int(hi),
		Data:        trace.Data{Vars: map[string]int{"pivot": pivot}},
	})

	i := lo
	for j := lo; j < hi; j++ {
		s.compare(fmt.Sprintf("compare-%d-%d", lo, j), j, hi)
		if s.arr[j] < pivot {
			// arr[i] >= pivot > arr[j] whenever i != j.
			if i != j {
				s.swap(fmt.Sprintf("swap-%d-%d", i, j), i, j)
			}
			i++
		}
	}
	if s.arr[i] > s.arr[hi] {
		s.swap(fmt.Sprintf("place-%d", i), i, hi)
	}
	s.finalize(fmt.Sprintf("sorted-%d", i), i)
	return i
}
