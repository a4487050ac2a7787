package generators

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algotrace/internal/trace"
)

func stepIDs(tr *trace.Trace) []string {
	ids := make([]string, 0, tr.Len())
	for _, s := range tr.Steps() {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestLinearSearch_Found(t *testing.T) {
	tr := LinearSearch([]int{5, 3, 8, 1}, 8)

	assert.Equal(t, []string{"init", "compare-0", "compare-1", "compare-2", "found"}, stepIDs(tr))
	for i, s := range tr.Steps()[1:4] {
		assert.Equal(t, []int{i}, s.Compared)
		require.NotNil(t, s.Current)
		assert.Equal(t, i, *s.Current)
	}

	last := tr.Last()
	require.NotNil(t, last.Data.Result)
	assert.True(t, last.Data.Result.Found())
	assert.Equal(t, 2, last.Data.Result.Index)
	assert.Equal(t, []int{2}, last.Highlighted)
	assert.Equal(t, 3, last.Data.Comparisons)
}

func TestLinearSearch_NotFoundAndEmpty(t *testing.T) {
	tr := LinearSearch([]int{1, 2}, 9)
	assert.Equal(t, []string{"init", "compare-0", "compare-1", "not-found"}, stepIDs(tr))
	assert.Equal(t, trace.OutcomeNotFound, tr.Last().Data.Result.Outcome)

	tr = LinearSearch(nil, 9)
	assert.Equal(t, []string{"init", "not-found"}, stepIDs(tr))
}

func TestBinarySearch_Found(t *testing.T) {
	tr := BinarySearch([]int{1, 3, 5, 7, 9, 11}, 7)

	assert.Equal(t, []string{
		"init",
		"mid-0", "compare-0", "right-0",
		"mid-1", "compare-1", "left-1",
		"mid-2", "compare-2", "found",
	}, stepIDs(tr))

	var mids []trace.Bounds
	for _, s := range tr.Steps() {
		if s.Data.Bounds != nil && strings.HasPrefix(s.ID, "mid-") {
			mids = append(mids, *s.Data.Bounds)
		}
	}
	assert.Equal(t, []trace.Bounds{
		{Low: 0, Mid: 2, High: 5},
		{Low: 3, Mid: 4, High: 5},
		{Low: 3, Mid: 3, High: 3},
	}, mids)

	res := tr.Last().Data.Result
	require.NotNil(t, res)
	assert.Equal(t, trace.OutcomeFound, res.Outcome)
	assert.Equal(t, 3, res.Index)
	assert.Equal(t, 7, res.Value)
}

func TestBinarySearch_NotFound(t *testing.T) {
	tr := BinarySearch([]int{2, 4, 6}, 5)

	last := tr.Last()
	assert.Equal(t, "not-found", last.ID)
	require.NotNil(t, last.Data.Bounds)
	assert.Greater(t, last.Data.Bounds.Low, last.Data.Bounds.High)
	assert.Equal(t, 2, last.Data.Bounds.Low)
	assert.Equal(t, 1, last.Data.Bounds.High)

	tr = BinarySearch(nil, 1)
	assert.Equal(t, []string{"init", "not-found"}, stepIDs(tr))
}

func TestJumpSearch(t *testing.T) {
	arr := []int{1, 3, 5, 7, 9, 11, 13, 15, 17}

	tr := JumpSearch(arr, 13)
	assert.Equal(t, []string{"init", "probe-2", "probe-5", "probe-8", "scan-6", "found"}, stepIDs(tr))
	assert.Equal(t, 6, tr.Last().Data.Result.Index)

	tr = JumpSearch(arr, 20)
	assert.Equal(t, []string{"init", "probe-2", "probe-5", "probe-8", "not-found"}, stepIDs(tr))

	tr = JumpSearch(nil, 1)
	assert.Equal(t, []string{"init", "not-found"}, stepIDs(tr))
}

func TestSearchers_AgreeOnSortedInput(t *testing.T) {
	searchers := map[string]func([]int, int) *trace.Trace{
		NameLinearSearch:  LinearSearch,
		NameBinarySearch:  BinarySearch,
		NameJumpSearch:    JumpSearch,
		NameTernarySearch: TernarySearch,
	}
	arrays := [][]int{
		{},
		{4},
		{1, 2},
		{1, 3, 5, 7, 9, 11},
		{2, 2, 2, 5, 5, 8},
		{-7, -3, 0, 4, 10, 11, 12, 40, 41, 90},
	}

	for name, search := range searchers {
		for _, arr := range arrays {
			for target := -8; target <= 91; target++ {
				tr := search(arr, target)
				res := tr.Last().Data.Result
				require.NotNil(t, res, "%s %v %d", name, arr, target)

				if slices.Contains(arr, target) {
					require.Equal(t, trace.OutcomeFound, res.Outcome, "%s %v %d", name, arr, target)
					assert.Equal(t, target, arr[res.Index], "%s %v %d", name, arr, target)
				} else {
					assert.Equal(t, trace.OutcomeNotFound, res.Outcome, "%s %v %d", name, arr, target)
					assert.Equal(t, -1, res.Index)
				}
			}
		}
	}
}

func TestTernarySearch_RangeShrinks(t *testing.T) {
	tr := TernarySearch([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, 14)

	width := 13
	for _, s := range tr.Steps() {
		if s.Data.Bounds == nil || s.Data.Bounds.Mid != -1 || s.ID == "init" || s.Data.Result != nil {
			continue
		}
		w := s.Data.Bounds.High - s.Data.Bounds.Low + 1
		assert.Less(t, w, width, s.ID)
		width = w
	}
	assert.Equal(t, trace.OutcomeNotFound, tr.Last().Data.Result.Outcome)
}
