// Package export writes traces in formats other tools can read.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/trace"
)

type Document struct {
	Algorithm  string           `json:"algorithm"`
	Family     string           `json:"family"`
	Complexity stats.Complexity `json:"complexity"`
	Steps      int              `json:"steps"`
	Outcome    trace.Outcome    `json:"outcome"`
	Final      stats.Stats      `json:"final"`
	Trace      *trace.Trace     `json:"trace"`
}

func NewDocument(k algorithms.Kind, tr *trace.Trace) Document {
	last := tr.Last()
	doc := Document{
		Algorithm:  k.String(),
		Family:     string(k.Family()),
		Complexity: k.Complexity(),
		Steps:      tr.Len(),
		Final:      stats.Project(last, k.Complexity()),
		Trace:      tr,
	}
	if last.Data.Result != nil {
		doc.Outcome = last.Data.Result.Outcome
	}
	return doc
}

func JSON(w io.Writer, k algorithms.Kind, tr *trace.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(k, tr))
}

var csvHeader = []string{"step", "id", "comparisons", "swaps", "accesses", "description"}

// CSV writes one row of counters per step.
func CSV(w io.Writer, tr *trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range tr.Len() {
		s := tr.At(i)
		row := []string{
			strconv.Itoa(i),
			s.ID,
			strconv.Itoa(s.Data.Comparisons),
			strconv.Itoa(s.Data.Swaps),
			strconv.Itoa(s.Data.Accesses),
			s.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
