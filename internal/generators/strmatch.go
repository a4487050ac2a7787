package generators

import (
	"fmt"

	"github.com/san-kum/algotrace/internal/trace"
)

const (
	NameNaiveMatch = "naive-match"
	NameKMP        = "kmp"
	NameRabinKarp  = "rabin-karp"
)

const (
	rkBase = 256
	rkMod  = 101
)

// matcher holds the rune views and match list shared by the string matchers.
// Indices in every step are rune offsets.
type matcher struct {
	b       *trace.Builder
	text    []rune
	pattern []rune
	matches []int
	lps     []int
}

func (m *matcher) state(i, j int) *trace.MatchState {
	return &trace.MatchState{
		TextIndex:    i,
		PatternIndex: j,
		LPS:          m.lps,
		Matches:      trace.CloneInts(m.matches),
	}
}

// start validates the input and emits the initial step. It reports false when
// the trace is already terminated.
func (m *matcher) start(name, text, pattern, what string) bool {
	m.b = trace.NewBuilder(name)
	m.text = []rune(text)
	m.pattern = []rune(pattern)
	if len(m.pattern) == 0 {
		m.b.Invalid("pattern is empty")
		return false
	}
	m.b.Emit(trace.Step{
		ID:          "init",
		Description: fmt.Sprintf("%s: find %q in %q", what, pattern, text),
		Data:        trace.Data{Match: m.state(0, 0)},
	})
	switch {
	case len(m.text) == 0:
		m.b.Emit(trace.Step{
			ID:          "empty",
			Description: "text is empty",
			Data: trace.Data{Match: m.state(0, 0), Result: &trace.Result{
				Outcome: trace.OutcomeEmpty,
				Index:   -1,
			}},
		})
		return false
	case len(m.pattern) > len(m.text):
		m.b.Emit(trace.Step{
			ID:          "not-found",
			Description: "pattern is longer than text",
			Data: trace.Data{Match: m.state(0, 0), Result: &trace.Result{
				Outcome: trace.OutcomeNotFound,
				Index:   -1,
			}},
		})
		return false
	}
	return true
}

func (m *matcher) matched(s int) {
	m.matches = append(m.matches, s)
	m.b.Emit(trace.Step{
		ID:          fmt.Sprintf("match-%d", s),
		Description: fmt.Sprintf("pattern occurs at index %d", s),
		Highlighted: trace.Range(s, s+len(m.pattern)-1),
		Data:        trace.Data{Match: m.state(s, len(m.pattern))},
	})
}

func (m *matcher) finish() *trace.Trace {
	res := &trace.Result{Outcome: trace.OutcomeNotFound, Index: -1}
	desc := "pattern does not occur in text"
	if len(m.matches) > 0 {
		res = &trace.Result{Outcome: trace.OutcomeFound, Index: m.matches[0], Value: len(m.matches)}
		desc = fmt.Sprintf("pattern occurs %d time(s), at %v", len(m.matches), m.matches)
	}
	m.b.Emit(trace.Step{
		ID:          "complete",
		Description: desc,
		Highlighted: trace.CloneInts(m.matches),
		Data:        trace.Data{Match: m.state(len(m.text), 0), Result: res},
	})
	return m.b.Build()
}

// NaiveMatch tries every alignment and compares character by character.
func NaiveMatch(text, pattern string) *trace.Trace {
	m := &matcher{}
	if !m.start(NameNaiveMatch, text, pattern, "naive matching") {
		return m.b.Build()
	}
	n, k := len(m.text), len(m.pattern)

	for s := 0; s <= n-k; s++ {
		j := 0
		for ; j < k; j++ {
			m.b.Compare(1)
			m.b.Access(2)
			ok := m.text[s+j] == m.pattern[j]
			verdict := "mismatch"
			if ok {
				verdict = "match"
			}
			m.b.Emit(trace.Step{
				ID:          fmt.Sprintf("compare-%d-%d", s, j),
				Description: fmt.Sprintf("text[%d] = %q vs pattern[%d] = %q: %s", s+j, m.text[s+j], j, m.pattern[j], verdict),
				Compared:    []int{s + j},
				Current:     trace.Int(s + j),
				Data:        trace.Data{Match: m.state(s+j, j)},
			})
			if !ok {
				break
			}
		}
		if j == k {
			m.matched(s)
		}
	}
	return m.finish()
}

// prefixTable computes the longest proper prefix that is also a suffix for
// every prefix of p. Each iteration advances i or strictly shrinks length.
func prefixTable(b *trace.Builder, p []rune) []int {
	lps := make([]int, len(p))
	length, i := 0, 1
	for i < len(p) {
		b.Compare(1)
		switch {
		case p[i] == p[length]:
			length++
			lps[i] = length
			i++
		case length > 0:
			length = lps[length-1]
		default:
			i++
		}
	}
	return lps
}

// KMP scans the text once, using the prefix table to skip re-comparisons.
// The table is computed before the scan and attached unchanged to every
// later step.
func KMP(text, pattern string) *trace.Trace {
	m := &matcher{}
	if !m.start(NameKMP, text, pattern, "Knuth-Morris-Pratt") {
		return m.b.Build()
	}
	m.lps = prefixTable(m.b, m.pattern)
	m.b.Emit(trace.Step{
		ID:          "lps",
		Description: fmt.Sprintf("prefix table for %q: %v", pattern, m.lps),
		Data:        trace.Data{Match: m.state(0, 0)},
	})

	n, k := len(m.text), len(m.pattern)
	i, j := 0, 0
	// Each round advances i, or strictly lowers j since lps[j-1] < j.
	for i < n {
		m.b.Compare(1)
		m.b.Access(2)
		m.b.Emit(trace.Step{
			ID:          fmt.Sprintf("compare-%d-%d", i, j),
			Description: fmt.Sprintf("text[%d] = %q vs pattern[%d] = %q", i, m.text[i], j, m.pattern[j]),
			Compared:    []int{i},
			Current:     trace.Int(i),
			Data:        trace.Data{Match: m.state(i, j)},
		})
		switch {
		case m.text[i] == m.pattern[j]:
			i++
			j++
			if j == k {
				m.matched(i - k)
				j = m.lps[j-1]
			}
		case j > 0:
			j = m.lps[j-1]
			m.b.Emit(trace.Step{
				ID:          fmt.Sprintf("shift-%d-%d", i, j),
				Description: fmt.Sprintf("mismatch, fall back to pattern[%d] using the prefix table", j),
				Current:     trace.Int(i),
				Data:        trace.Data{Match: m.state(i, j)},
			})
		default:
			i++
		}
	}
	return m.finish()
}

// RabinKarp compares rolling window hashes and verifies hash hits
// character by character.
func RabinKarp(text, pattern string) *trace.Trace {
	m := &matcher{}
	if !m.start(NameRabinKarp, text, pattern, "Rabin-Karp") {
		return m.b.Build()
	}
	n, k := len(m.text), len(m.pattern)

	high := 1
	for range k - 1 {
		high = high * rkBase % rkMod
	}
	ph, th := 0, 0
	for i := range k {
		ph = (rkBase*ph + int(m.pattern[i])) % rkMod
		th = (rkBase*th + int(m.text[i])) % rkMod
	}

	for s := 0; s <= n-k; s++ {
		m.b.Compare(1)
		d := trace.Data{Match: m.state(s, 0), Vars: map[string]int{"window_hash": th, "pattern_hash": ph}}
		m.b.Emit(trace.Step{
			ID:          fmt.Sprintf("window-%d", s),
			Description: fmt.Sprintf("window %d hash %d vs pattern hash %d", s, th, ph),
			Highlighted: trace.Range(s, s+k-1),
			Current:     trace.Int(s),
			Data:        d,
		})
		if th == ph {
			j := 0
			for ; j < k; j++ {
				m.b.Compare(1)
				m.b.Access(2)
				if m.text[s+j] != m.pattern[j] {
					break
				}
			}
			m.b.Emit(trace.Step{
				ID:          fmt.Sprintf("verify-%d", s),
				Description: fmt.Sprintf("hash hit at %d, %d of %d characters agree", s, j, k),
				Compared:    trace.Range(s, s+min(j, k-1)),
				Current:     trace.Int(s),
				Data:        trace.Data{Match: m.state(s, j), Vars: map[string]int{"window_hash": th, "pattern_hash": ph}},
			})
			if j == k {
				m.matched(s)
			}
		}
		if s < n-k {
			drop := int(m.text[s]) * high % rkMod
			th = ((th-drop+rkMod)%rkMod*rkBase + int(m.text[s+k])) % rkMod
		}
	}
	return m.finish()
}
