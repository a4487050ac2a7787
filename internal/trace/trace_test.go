package trace

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBuilderStampsCounters(t *testing.T) {
	b := NewBuilder("test")
	b.Emit(Step{ID: "init"})
	b.Compare(1)
	b.Emit(Step{ID: "compare"})
	b.Swap(2)
	b.Access(3)
	b.Emit(Step{ID: "swap"})
	tr := b.Build()

	if tr.Len() != 3 {
		t.Fatalf("expected 3 steps, got %d", tr.Len())
	}
	want := []Counters{{}, {Comparisons: 1}, {Comparisons: 1, Swaps: 2, Accesses: 3}}
	for i, w := range want {
		if got := tr.At(i).Data.Counters; got != w {
			t.Errorf("step %d: counters = %+v, want %+v", i, got, w)
		}
	}
}

func TestBuilderIgnoresNegativeIncrements(t *testing.T) {
	b := NewBuilder("test")
	b.Compare(2)
	b.Compare(-5)
	b.Swap(-1)
	if c := b.Counters(); c.Comparisons != 2 || c.Swaps != 0 {
		t.Errorf("counters went backwards: %+v", c)
	}
}

func TestBuilderCopiesSlices(t *testing.T) {
	arr := []int{3, 1, 2}
	idx := []int{0, 1}
	b := NewBuilder("test")
	b.Emit(Step{ID: "a", Compared: idx, Data: Data{Array: arr}})
	arr[0] = 99
	idx[0] = 7
	tr := b.Build()

	s := tr.First()
	if s.Data.Array[0] != 3 {
		t.Errorf("array snapshot aliased generator state: %v", s.Data.Array)
	}
	if s.Compared[0] != 0 {
		t.Errorf("compared indices aliased generator state: %v", s.Compared)
	}
}

func TestBuildEmptyYieldsInvalid(t *testing.T) {
	tr := NewBuilder("test").Build()
	if tr.Len() != 1 {
		t.Fatalf("expected 1 step, got %d", tr.Len())
	}
	last := tr.Last()
	if !last.Terminal() || last.Data.Result.Outcome != OutcomeInvalid {
		t.Errorf("expected terminal invalid step, got %+v", last)
	}
}

func TestLookup(t *testing.T) {
	tr := Single("test", "bad")
	if _, err := tr.Lookup(0); err != nil {
		t.Errorf("lookup 0: %v", err)
	}
	for _, i := range []int{-1, 1, 10} {
		if _, err := tr.Lookup(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("lookup %d: expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	b := NewBuilder("test")
	b.Emit(Step{ID: "a"})
	b.Emit(Step{ID: "b"})
	tr := b.Build()

	steps := tr.Steps()
	steps[0].ID = "mutated"
	if tr.First().ID != "a" {
		t.Error("Steps() exposed the internal slice")
	}
}

func TestMarshalJSON(t *testing.T) {
	b := NewBuilder("linear-search")
	b.Emit(Step{ID: "init", Description: "start", Data: Data{Array: []int{1}}})
	tr := b.Build()

	raw, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Algorithm string `json:"algorithm"`
		Steps     []Step `json:"steps"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Algorithm != "linear-search" || len(decoded.Steps) != 1 {
		t.Errorf("unexpected decode: %+v", decoded)
	}
}

func TestResultFound(t *testing.T) {
	var nilResult *Result
	tests := []struct {
		name string
		r    *Result
		want bool
	}{
		{"nil", nilResult, false},
		{"found", &Result{Outcome: OutcomeFound}, true},
		{"not found", &Result{Outcome: OutcomeNotFound}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Found(); got != tt.want {
				t.Errorf("Found() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	if got := Range(2, 4); len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Errorf("Range(2,4) = %v", got)
	}
	if got := Range(3, 2); len(got) != 0 {
		t.Errorf("Range(3,2) = %v, want empty", got)
	}
}
