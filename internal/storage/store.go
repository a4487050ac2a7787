// Package storage archives generated traces on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/export"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/trace"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.json"
	countersFile = "counters.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Algorithm string         `json:"algorithm"`
	Preset    string         `json:"preset,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Steps     int            `json:"steps"`
	Outcome   trace.Outcome  `json:"outcome"`
	Final     stats.Stats    `json:"final"`
}

// Save writes the run's metadata, the full trace document and its counter
// series, and returns the new run id.
func (s *Store) Save(k algorithms.Kind, preset string, params map[string]any, tr *trace.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%s", k, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	doc := export.NewDocument(k, tr)
	meta := RunMetadata{
		ID:        runID,
		Algorithm: k.String(),
		Preset:    preset,
		Params:    params,
		Timestamp: s.now(),
		Steps:     doc.Steps,
		Outcome:   doc.Outcome,
		Final:     doc.Final,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, traceFile), doc); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, countersFile), func(w io.Writer) error {
		return export.CSV(w, tr)
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(f, write)
}

// writeAndClose reports the Close error when write succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortStableFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TracePath is the saved trace document of a run.
func (s *Store) TracePath(runID string) string {
	return filepath.Join(s.baseDir, runID, traceFile)
}

// LoadSeries reads back the counter columns of a run.
func (s *Store) LoadSeries(runID string) (stats.Columns, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, countersFile))
	if err != nil {
		if os.IsNotExist(err) {
			return stats.Columns{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return stats.Columns{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return stats.Columns{}, err
	}

	var cols stats.Columns
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[2+j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		cols.Comparisons = append(cols.Comparisons, vals[0])
		cols.Swaps = append(cols.Swaps, vals[1])
		cols.Accesses = append(cols.Accesses, vals[2])
	}

	return cols, nil
}
