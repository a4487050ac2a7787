package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/automation"
	"github.com/san-kum/algotrace/internal/config"
	"github.com/san-kum/algotrace/internal/logging"
	"github.com/san-kum/algotrace/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logJSON    string

	preset   string
	params   []string
	speed    float64
	interval string

	// run
	live      bool
	frameRate int
	save      bool

	// plot
	runID string

	// play
	theme       string
	metricsAddr string

	// export
	format  string
	outFile string
	stepIdx int
	scale   float64

	// scenario
	scenarioFormat string

	// sweep
	minSize  int
	maxSize  int
	numSteps int
	trials   int
	seed     int64

	cfg     *config.Config
	logger  *slog.Logger
	logSink io.Closer
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "algotrace",
		Short:             "step through algorithms one operation at a time",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				logSink.Close()
				logSink = nil
			}
		},
		// Without a subcommand, play the configured algorithm.
		RunE: playAlgorithm,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".algotrace", "directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logJSON, "log-json", "", "also write JSON logs to this file")

	inputFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&preset, "preset", "", "named input preset")
		cmd.Flags().StringArrayVar(&params, "set", nil, "override an input field, e.g. --set array=[5,3,8] --set target=8")
	}
	timingFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&speed, "speed", 0, "speed multiplier")
		cmd.Flags().StringVar(&interval, "interval", "", "base interval between steps, e.g. 500ms")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list supported algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list input presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "replay a trace step by step on stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlgorithm,
	}
	inputFlags(runCmd)
	timingFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "animate in real time instead of printing every step")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().StringVar(&theme, "theme", "", "colour theme for --live")
	runCmd.Flags().BoolVar(&save, "save", false, "archive the trace under --data")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "interactive player",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playAlgorithm,
	}
	inputFlags(playCmd)
	timingFlags(playCmd)
	playCmd.Flags().StringVar(&theme, "theme", "", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	playCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	inputFlags(rootCmd)
	timingFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme")

	exportCmd := &cobra.Command{
		Use:   "export [algorithm]",
		Short: "export a trace as json, csv or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportTrace,
	}
	inputFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&stepIdx, "step", -1, "step drawn by svg; negative counts from the end")
	exportCmd.Flags().Float64Var(&scale, "scale", 2, "svg scale")

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot comparisons and swaps across a trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotTrace,
	}
	inputFlags(plotCmd)
	plotCmd.Flags().StringVar(&runID, "run", "", "plot a saved run instead of generating a trace")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "generate every run of a yaml scenario and summarize",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&scenarioFormat, "format", "table", "table or yaml")

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "measure counters over growing random inputs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&minSize, "min", 4, "smallest input size")
	sweepCmd.Flags().IntVar(&maxSize, "max", 64, fmt.Sprintf("largest input size, at most %d", automation.MaxSweepSize))
	sweepCmd.Flags().IntVar(&numSteps, "steps", 8, "number of sizes")
	sweepCmd.Flags().IntVar(&trials, "trials", 10, "random inputs per size")
	sweepCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(listCmd, presetsCmd, runCmd, historyCmd, playCmd, exportCmd, plotCmd, scenarioCmd, sweepCmd, configCmd)
	return rootCmd
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logJSON != "" {
		cfg.LogJSON = logJSON
	}
	if f := cmd.Flags().Lookup("speed"); f != nil && f.Changed {
		cfg.Speed = speed
	}
	if f := cmd.Flags().Lookup("interval"); f != nil && f.Changed {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("--interval: %w", err)
		}
		cfg.BaseInterval = d
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	var sink io.Writer
	if cfg.LogJSON != "" {
		f, err := os.OpenFile(cfg.LogJSON, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open json log: %w", err)
		}
		sink, logSink = f, f
	}
	logger = logging.New(level, sink)
	return nil
}

// parseParams turns key=value pairs into raw input params. Values are YAML,
// so numbers, lists and maps keep their types.
func parseParams(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want key=value", p)
		}
		var v any
		if err := yaml.Unmarshal([]byte(value), &v); err != nil || v == nil {
			v = value
		}
		out[key] = v
	}
	return out, nil
}

// request is a resolved algorithm input plus where it came from.
type request struct {
	kind   algorithms.Kind
	input  algorithms.Input
	preset string
	params map[string]any
}

// resolveInput picks the algorithm from args or the config. The config's
// preset and params only apply to the configured algorithm; flags apply on
// top either way.
func resolveInput(cmd *cobra.Command, args []string) (request, error) {
	name, base, raw := cfg.Algorithm, cfg.Preset, map[string]any{}
	if len(args) > 0 && args[0] != cfg.Algorithm {
		name, base = args[0], algorithms.DefaultPreset
	} else {
		for k, v := range cfg.Params {
			raw[k] = v
		}
	}
	if f := cmd.Flags().Lookup("preset"); f != nil && f.Changed {
		base = preset
	}
	if base == "" {
		base = algorithms.DefaultPreset
	}
	overrides, err := parseParams(params)
	if err != nil {
		return request{}, err
	}
	for k, v := range overrides {
		raw[k] = v
	}

	k, err := algorithms.Parse(name)
	if err != nil {
		return request{}, err
	}
	in, err := algorithms.Resolve(k, base, raw)
	if err != nil {
		return request{}, fmt.Errorf("%s: %w", k, err)
	}
	logger.Debug("input resolved", "algorithm", k, "preset", base, "overrides", len(raw))
	return request{kind: k, input: in, preset: base, params: raw}, nil
}
