package generators

import (
	"fmt"
	"math"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	NameLinearSearch  = "linear-search"
	NameBinarySearch  = "binary-search"
	NameJumpSearch    = "jump-search"
	NameTernarySearch = "ternary-search"
)

func searchData(arr []int, target int) trace.Data {
	return trace.Data{Array: arr, Target: trace.Int(target)}
}

func foundStep(arr []int, target, i int, bounds *trace.Bounds) trace.Step {
	d := searchData(arr, target)
	d.Bounds = bounds
	d.Result = &trace.Result{Outcome: trace.OutcomeFound, Index: i, Value: arr[i]}
	return trace.Step{
		ID:          "found",
		Description: fmt.Sprintf("found %d at index %d", target, i),
		Highlighted: []int{i},
		Current:     trace.Int(i),
		Data:        d,
	}
}

func notFoundStep(arr []int, target int, bounds *trace.Bounds, why string) trace.Step {
	d := searchData(arr, target)
	d.Bounds = bounds
	d.Result = &trace.Result{Outcome: trace.OutcomeNotFound, Index: -1}
	return trace.Step{
		ID:          "not-found",
		Description: fmt.Sprintf("%d not found: %s", target, why),
		Data:        d,
	}
}

// LinearSearch checks every position from left to right.
func LinearSearch(arr []int, target int) *trace.Trace {
	b := trace.NewBuilder(NameLinearSearch)
	b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("search for %d by checking each element in order", target),
		Data:        searchData(arr, target),
	})

	for i, v := range arr {
		b.Compare(1)
		b.Access(1)
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("compare-%d", i),
			Description: fmt.Sprintf("compare arr[%d] = %d with %d", i, v, target),
			Compared:    []int{i},
			Current:     trace.Int(i),
			Data:        searchData(arr, target),
		})
		if v == target {
			b.Emit(foundStep(arr, target, i, nil))
			return b.Build()
		}
	}

	why := "every element checked"
	if len(arr) == 0 {
		why = "array is empty"
	}
	b.Emit(notFoundStep(arr, target, nil, why))
	return b.Build()
}

// BinarySearch halves the window [low, high] until it finds target or the
// window is empty. high-low shrinks by at least one every iteration.
func BinarySearch(arr []int, target int) *trace.Trace {
	b := trace.NewBuilder(NameBinarySearch)
	low, high := 0, len(arr)-1

	first := searchData(arr, target)
	first.Bounds = &trace.Bounds{Low: low, Mid: -1, High: high}
	b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("search for %d in sorted range [%d, %d]", target, low, high),
		Highlighted: trace.Range(low, high),
		Data:        first,
	})

	for k := 0; low <= high; k++ {
		mid := low + (high-low)/2

		d := searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: low, Mid: mid, High: high}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("mid-%d", k),
			Description: fmt.Sprintf("mid = %d + (%d - %d) / 2 = %d", low, high, low, mid),
			Highlighted: trace.Range(low, high),
			Current:     trace.Int(mid),
			Data:        d,
		})

		b.Compare(1)
		b.Access(1)
		v := arr[mid]
		d = searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: low, Mid: mid, High: high}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("compare-%d", k),
			Description: fmt.Sprintf("compare arr[%d] = %d with %d", mid, v, target),
			Compared:    []int{mid},
			Current:     trace.Int(mid),
			Data:        d,
		})

		switch {
		case v == target:
			b.Emit(foundStep(arr, target, mid, &trace.Bounds{Low: low, Mid: mid, High: high}))
			return b.Build()
		case v < target:
			low = mid + 1
			d = searchData(arr, target)
			d.Bounds = &trace.Bounds{Low: low, Mid: mid, High: high}
			b.Emit(trace.Step{
				ID:          fmt.Sprintf("right-%d", k),
				Description: fmt.Sprintf("%d < %d, search right half [%d, %d]", v, target, low, high),
				Highlighted: trace.Range(low, high),
				Data:        d,
			})
		default:
			high = mid - 1
			d = searchData(arr, target)
			d.Bounds = &trace.Bounds{Low: low, Mid: mid, High: high}
			b.Emit(trace.Step{
				ID:          fmt.Sprintf("left-%d", k),
				Description: fmt.Sprintf("%d > %d, search left half [%d, %d]", v, target, low, high),
				Highlighted: trace.Range(low, high),
				Data:        d,
			})
		}
	}

	why := fmt.Sprintf("low %d passed high %d", low, high)
	if len(arr) == 0 {
		why = "array is empty"
	}
	b.Emit(notFoundStep(arr, target, &trace.Bounds{Low: low, Mid: -1, High: high}, why))
	return b.Build()
}

// JumpSearch probes the last element of blocks of size floor(sqrt(n)), then
// scans the block that may hold target.
func JumpSearch(arr []int, target int) *trace.Trace {
	b := trace.NewBuilder(NameJumpSearch)
	n := len(arr)
	size := max(int(math.Sqrt(float64(n))), 1)

	first := searchData(arr, target)
	first.Vars = map[string]int{"block": size}
	b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("search for %d jumping %d elements at a time", target, size),
		Data:        first,
	})
	if n == 0 {
		b.Emit(notFoundStep(arr, target, nil, "array is empty"))
		return b.Build()
	}

	prev := 0
	for prev < n {
		last := min(prev+size, n) - 1
		b.Compare(1)
		b.Access(1)
		d := searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: prev, Mid: last, High: last}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("probe-%d", last),
			Description: fmt.Sprintf("probe block end arr[%d] = %d", last, arr[last]),
			Compared:    []int{last},
			Highlighted: trace.Range(prev, last),
			Current:     trace.Int(last),
			Data:        d,
		})
		if arr[last] >= target {
			break
		}
		prev += size
	}
	if prev >= n {
		b.Emit(notFoundStep(arr, target, nil, "target is beyond the last block"))
		return b.Build()
	}

	end := min(prev+size, n) - 1
	for i := prev; i <= end; i++ {
		b.Compare(1)
		b.Access(1)
		d := searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: prev, Mid: i, High: end}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("scan-%d", i),
			Description: fmt.Sprintf("scan block: compare arr[%d] = %d with %d", i, arr[i], target),
			Compared:    []int{i},
			Current:     trace.Int(i),
			Data:        d,
		})
		if arr[i] == target {
			b.Emit(foundStep(arr, target, i, &trace.Bounds{Low: prev, Mid: i, High: end}))
			return b.Build()
		}
	}

	b.Emit(notFoundStep(arr, target, &trace.Bounds{Low: prev, Mid: -1, High: end}, "block scanned"))
	return b.Build()
}

// TernarySearch splits the window into thirds with two probes per round.
// Every branch moves low up or high down, so the window strictly shrinks.
func TernarySearch(arr []int, target int) *trace.Trace {
	b := trace.NewBuilder(NameTernarySearch)
	low, high := 0, len(arr)-1

	first := searchData(arr, target)
	first.Bounds = &trace.Bounds{Low: low, Mid: -1, High: high}
	b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("search for %d splitting [%d, %d] into thirds", target, low, high),
		Data:        first,
	})

	for k := 0; low <= high; k++ {
		third := (high - low) / 3
		mid1, mid2 := low+third, high-third

		d := searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: low, Mid: mid1, High: high}
		d.Vars = map[string]int{"mid1": mid1, "mid2": mid2}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("mids-%d", k),
			Description: fmt.Sprintf("mid1 = %d, mid2 = %d", mid1, mid2),
			Highlighted: []int{mid1, mid2},
			Data:        d,
		})

		for p, m := range []int{mid1, mid2} {
			if p == 1 && mid1 == mid2 {
				break
			}
			b.Compare(1)
			b.Access(1)
			d := searchData(arr, target)
			d.Bounds = &trace.Bounds{Low: low, Mid: m, High: high}
			b.Emit(trace.Step{
				ID:          fmt.Sprintf("compare-%d-%d", k, m),
				Description: fmt.Sprintf("compare arr[%d] = %d with %d", m, arr[m], target),
				Compared:    []int{m},
				Current:     trace.Int(m),
				Data:        d,
			})
			if arr[m] == target {
				b.Emit(foundStep(arr, target, m, &trace.Bounds{Low: low, Mid: m, High: high}))
				return b.Build()
			}
		}

		var id, what string
		switch {
		case target < arr[mid1]:
			high = mid1 - 1
			id, what = "left", "left third"
		case target > arr[mid2]:
			low = mid2 + 1
			id, what = "right", "right third"
		default:
			low, high = mid1+1, mid2-1
			id, what = "middle", "middle third"
		}
		d = searchData(arr, target)
		d.Bounds = &trace.Bounds{Low: low, Mid: -1, High: high}
		b.Emit(trace.Step{
			ID:          fmt.Sprintf("%s-%d", id, k),
			Description: fmt.Sprintf("continue in %s [%d, %d]", what, low, high),
			Highlighted: trace.Range(low, high),
			Data:        d,
		})
	}

	why := "search window is empty"
	if len(arr) == 0 {
		why = "array is empty"
	}
	b.Emit(notFoundStep(arr, target, &trace.Bounds{Low: low, Mid: -1, High: high}, why))
	return b.Build()
}
