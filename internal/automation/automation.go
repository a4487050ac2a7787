// Package automation runs scripted batches of trace generations and size sweeps.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/trace"
)

// Scenario is a scripted batch of trace generations
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Run  `yaml:"runs"`
}

// Run is a single generation in a scenario
type Run struct {
	Algorithm string         `yaml:"algorithm"`
	Preset    string         `yaml:"preset"`
	Params    map[string]any `yaml:"params"`
}

// Summary condenses one generated trace
type Summary struct {
	Algorithm   string        `json:"algorithm" yaml:"algorithm"`
	Preset      string        `json:"preset" yaml:"preset"`
	Steps       int           `json:"steps" yaml:"steps"`
	Outcome     trace.Outcome `json:"outcome" yaml:"outcome"`
	Index       int           `json:"index" yaml:"index"`
	Value       int           `json:"value" yaml:"value"`
	Comparisons int           `json:"comparisons" yaml:"comparisons"`
	Swaps       int           `json:"swaps" yaml:"swaps"`
	Accesses    int           `json:"accesses" yaml:"accesses"`
}

func Summarize(k algorithms.Kind, preset string, tr *trace.Trace) Summary {
	last := tr.Last()
	s := Summary{
		Algorithm:   k.String(),
		Preset:      preset,
		Steps:       tr.Len(),
		Index:       -1,
		Comparisons: last.Data.Comparisons,
		Swaps:       last.Data.Swaps,
		Accesses:    last.Data.Accesses,
	}
	if r := last.Data.Result; r != nil {
		s.Outcome, s.Index, s.Value = r.Outcome, r.Index, r.Value
	}
	return s
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario generates every run in order. The context is checked between
// runs; summaries produced before a failure are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]Summary, error) {
	results := make([]Summary, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("running", "scenario", scenario.Name, "run", i+1, "of", len(scenario.Runs), "algorithm", run.Algorithm)

		preset := run.Preset
		if preset == "" {
			preset = algorithms.DefaultPreset
		}
		k, tr, err := algorithms.Run(run.Algorithm, preset, run.Params)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		results = append(results, Summarize(k, preset, tr))
	}

	return results, nil
}

// MaxSweepSize bounds SizeSweep.MaxSize. Every trial builds a full trace, and
// a quadratic sort of n elements keeps about n^3 values alive.
const MaxSweepSize = 128

// SizeSweep measures how the work counters of an array algorithm grow with
// input size, averaging over random inputs.
type SizeSweep struct {
	Algorithm string
	MinSize   int
	MaxSize   int
	NumSteps  int
	Trials    int
	Seed      int64
}

// SweepResult holds the mean counters for one input size
type SweepResult struct {
	Size        int
	Comparisons float64
	Swaps       float64
	Accesses    float64
}

// RunSweep executes a size sweep, one goroutine per size. Size i draws its
// inputs from Seed+i, so results do not depend on scheduling. Search
// algorithms get a sorted array and a target drawn from it; sorts get an
// unsorted array.
func RunSweep(ctx context.Context, sweep *SizeSweep, logger *slog.Logger) ([]SweepResult, error) {
	k, err := algorithms.Parse(sweep.Algorithm)
	if err != nil {
		return nil, err
	}
	if fam := k.Family(); fam != algorithms.FamilySearch && fam != algorithms.FamilySort {
		return nil, fmt.Errorf("%s: size sweeps need an array algorithm, not %s", k, fam)
	}
	if sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize || sweep.NumSteps < 1 || sweep.Trials < 1 {
		return nil, fmt.Errorf("sweep bounds: sizes [%d, %d], %d steps, %d trials",
			sweep.MinSize, sweep.MaxSize, sweep.NumSteps, sweep.Trials)
	}
	if sweep.MaxSize > MaxSweepSize {
		return nil, fmt.Errorf("sweep bounds: max size %d exceeds %d", sweep.MaxSize, MaxSweepSize)
	}

	sizeStep := 0.0
	if sweep.NumSteps > 1 {
		sizeStep = float64(sweep.MaxSize-sweep.MinSize) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			size := sweep.MinSize + int(float64(idx)*sizeStep+0.5)
			rng := rand.New(rand.NewSource(sweep.Seed + int64(idx)))
			results[idx], errs[idx] = measure(ctx, k, size, sweep.Trials, rng)
			logger.Debug("sweep", "algorithm", k, "size", size, "comparisons", results[idx].Comparisons)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func measure(ctx context.Context, k algorithms.Kind, size, trials int, rng *rand.Rand) (SweepResult, error) {
	res := SweepResult{Size: size}
	for range trials {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		in := algorithms.NewInput()
		in.Array = make([]int, size)
		for j := range in.Array {
			in.Array[j] = rng.Intn(size * 4)
		}
		if k.Family() == algorithms.FamilySearch {
			slices.Sort(in.Array)
			in.Target = in.Array[rng.Intn(size)]
		}

		c := algorithms.Generate(k, in).Last().Data.Counters
		res.Comparisons += float64(c.Comparisons)
		res.Swaps += float64(c.Swaps)
		res.Accesses += float64(c.Accesses)
	}

	n := float64(trials)
	res.Comparisons /= n
	res.Swaps /= n
	res.Accesses /= n
	return res, nil
}
