package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/automation"
	"github.com/san-kum/algotrace/internal/export"
	"github.com/san-kum/algotrace/internal/playback"
	"github.com/san-kum/algotrace/internal/stats"
	"github.com/san-kum/algotrace/internal/storage"
	"github.com/san-kum/algotrace/internal/telemetry"
	"github.com/san-kum/algotrace/internal/trace"
	"github.com/san-kum/algotrace/internal/tui"
	"github.com/san-kum/algotrace/internal/viz"
)

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFAMILY\tTIME\tSPACE\tINPUT")
	for _, k := range algorithms.Kinds() {
		c := k.Complexity()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", k, k.Family(), c.Time, c.Space, strings.Join(k.Fields(), ","))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	k, err := algorithms.Parse(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "presets for %s:\n", k)
	for _, p := range algorithms.Presets(k) {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func engineOptions(extra ...playback.Option) []playback.Option {
	return append([]playback.Option{
		playback.WithBaseInterval(cfg.BaseInterval),
		playback.WithSpeed(cfg.Speed),
		playback.WithLogger(logger),
	}, extra...)
}

func printStep(w io.Writer, i int, s trace.Step) {
	fmt.Fprintf(w, "%4d\t%s\t%s\tc=%d s=%d a=%d\n", i, s.ID, s.Description, s.Data.Comparisons, s.Data.Swaps, s.Data.Accesses)
}

func printResult(w io.Writer, s trace.Step) {
	r := s.Data.Result
	if r == nil {
		return
	}
	switch r.Outcome {
	case trace.OutcomeInvalid:
		fmt.Fprintf(w, "result: invalid (%s)\n", r.Reason)
	case trace.OutcomeFound:
		fmt.Fprintf(w, "result: found at %d\n", r.Index)
	case trace.OutcomeComplete:
		fmt.Fprintf(w, "result: %d\n", r.Value)
	default:
		fmt.Fprintf(w, "result: %s\n", r.Outcome)
	}
}

// runAlgorithm replays the trace through an engine, then optionally
// archives it.
func runAlgorithm(cmd *cobra.Command, args []string) error {
	req, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	tr := algorithms.Generate(req.kind, req.input)
	if live {
		err = runLive(cmd.Context(), cmd.OutOrStdout(), tr, req.input)
	} else {
		err = replay(cmd.OutOrStdout(), req.kind, tr)
	}
	if err != nil {
		return err
	}

	if save {
		return saveRun(cmd, req, tr)
	}
	return nil
}

// replay drives an engine with a manual clock, so every step is printed
// without waiting.
func replay(out io.Writer, k algorithms.Kind, tr *trace.Trace) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	clock := playback.NewManualClock()
	engine, err := playback.New(tr, engineOptions(
		playback.WithClock(clock),
		playback.WithObserver(playback.ObserverFuncs{
			Tick: func(s playback.Snapshot) { printStep(w, s.Index, s.Step) },
		}),
	)...)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintf(out, "%s  %s\n\n", k, k.Complexity().Time)
	printStep(w, 0, tr.First())
	engine.Play()
	for clock.Next() {
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	printResult(out, engine.Current())
	return nil
}

func saveRun(cmd *cobra.Command, req request, tr *trace.Trace) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(req.kind, req.preset, req.params, tr)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved run %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tPRESET\tSTEPS\tOUTCOME\tCOMPARISONS\tSWAPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Preset,
			run.Steps,
			run.Outcome,
			run.Final.Comparisons,
			run.Final.Swaps,
		)
	}
	return w.Flush()
}

func runLive(ctx context.Context, w io.Writer, tr *trace.Trace, in algorithms.Input) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	renderer := tui.NewLiveRenderer(w, viz.NewStyles(viz.GetTheme(theme)),
		viz.Frame{Width: 80, Height: 12, Text: in.Text, Pattern: in.Pattern}, frameRate)

	done := make(chan struct{})
	var once sync.Once
	engine, err := playback.New(tr, engineOptions(
		playback.WithObserver(renderer.Observer()),
		playback.WithObserver(playback.ObserverFuncs{Change: func(s playback.Snapshot) {
			if s.Animation == playback.Completed {
				once.Do(func() { close(done) })
			}
		}}),
	)...)
	if err != nil {
		return err
	}
	defer engine.Close()

	renderer.Start()
	defer renderer.Stop()
	engine.Play()

	select {
	case <-done:
		printResult(w, engine.Current())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func playAlgorithm(cmd *cobra.Command, args []string) error {
	req, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	k, in := req.kind, req.input
	tr := algorithms.Generate(k, in)

	var extra []playback.Option
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec, err := telemetry.NewRecorder(reg)
		if err != nil {
			return err
		}
		extra = append(extra, playback.WithObserver(rec))

		srv := &http.Server{Addr: metricsAddr, Handler: telemetry.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		logger.Info("serving metrics", "addr", metricsAddr)
	}

	engine, err := playback.New(tr, engineOptions(extra...)...)
	if err != nil {
		return err
	}
	logger.Info("playing", "algorithm", k, "steps", tr.Len(), "engine", engine.ID())

	return tui.Run(engine, tui.Options{
		Styles:     viz.NewStyles(viz.GetTheme(theme)),
		Complexity: k.Complexity(),
		MinSpeed:   cfg.MinSpeed,
		MaxSpeed:   cfg.MaxSpeed,
		Text:       in.Text,
		Pattern:    in.Pattern,
	})
}

func exportTrace(cmd *cobra.Command, args []string) error {
	req, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}
	k, in := req.kind, req.input
	tr := algorithms.Generate(k, in)

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		err = export.JSON(w, k, tr)
	case "csv":
		err = export.CSV(w, tr)
	case "svg":
		err = writeSVG(w, tr)
	default:
		return fmt.Errorf("unknown format %q: want json, csv or svg", format)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("exported", "algorithm", k, "format", format, "file", outFile)
	}
	return nil
}

// writeSVG draws the chosen step's array, or the comparison series when the
// algorithm has no array payload.
func writeSVG(w io.Writer, tr *trace.Trace) error {
	i := stepIdx
	if i < 0 {
		i += tr.Len()
	}
	i = max(0, min(i, tr.Len()-1))

	svg := export.StepSVG(tr.At(i), scale)
	if svg == "" {
		svg = export.SeriesSVG(stats.Series(tr).Comparisons, int(400*scale), int(150*scale), "#00ffff")
	}
	if svg == "" {
		return fmt.Errorf("%s: nothing to draw in a %d-step trace", tr.Algorithm(), tr.Len())
	}
	_, err := fmt.Fprintln(w, svg)
	return err
}

func plotTrace(cmd *cobra.Command, args []string) error {
	var (
		name string
		cols stats.Columns
	)
	if runID != "" {
		st := storage.New(dataDir)
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		if cols, err = st.LoadSeries(runID); err != nil {
			return err
		}
		name = meta.Algorithm
	} else {
		req, err := resolveInput(cmd, args)
		if err != nil {
			return err
		}
		name = req.kind.String()
		cols = stats.Series(algorithms.Generate(req.kind, req.input))
	}
	if cols.Len() < 2 {
		return fmt.Errorf("%s: trace has a single step, nothing to plot", name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "algorithm: %s\n", name)
	fmt.Fprintf(out, "steps: %d\n\n", cols.Len())

	graph := asciigraph.PlotMany([][]float64{cols.Comparisons, cols.Swaps},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("comparisons (blue), swaps (red)"),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	graph = asciigraph.Plot(cols.Accesses,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("accesses"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenarioFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(results)
	}

	fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Fprintf(out, "%s\n", sc.Description)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tPRESET\tSTEPS\tOUTCOME\tCOMPARISONS\tSWAPS\tACCESSES")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			r.Algorithm, r.Preset, r.Steps, r.Outcome, r.Comparisons, r.Swaps, r.Accesses)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), &automation.SizeSweep{
		Algorithm: args[0],
		MinSize:   minSize,
		MaxSize:   maxSize,
		NumSteps:  numSteps,
		Trials:    trials,
		Seed:      seed,
	}, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tCOMPARISONS\tSWAPS\tACCESSES")
	comparisons := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.1f\n", r.Size, r.Comparisons, r.Swaps, r.Accesses)
		comparisons[i] = r.Comparisons
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(comparisons) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(comparisons,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s: mean comparisons, n = %d..%d", args[0], minSize, maxSize)),
		))
	}
	return nil
}
