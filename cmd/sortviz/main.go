package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	algorithm  string
	size       int
	speed      int
	seed       int64
	pattern    string
	minValue   int
	maxValue   int
	resetMode  string
	theme      string
	frameRate  int
	debug      bool
	dataDir    string

	// run
	metricsAddr string
	noColor     bool
	saveRun     bool
	// verify
	trials        int
	verifyMaxSize int
	// bench
	sweepSteps   int
	benchMaxSize int
	// export and svg
	outFile   string
	at        int
	svgWidth  int
	svgHeight int
	svgInv    bool
)

const debugLog = "sortviz-debug.log"

// main registers commands and flags and runs the visualizer when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "terminal sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := tuiLogger()
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.Run(cfg, logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVarP(&algorithm, "algorithm", "a", config.DefaultAlgorithm, "sorting algorithm")
	pf.IntVarP(&size, "size", "n", 40, "number of bars")
	pf.IntVar(&speed, "speed", 150, "playback speed (5-200)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&pattern, "pattern", "random", "initial order: random, sorted, reversed, nearly-sorted, few-unique")
	pf.IntVar(&minValue, "min", 10, "smallest generated value")
	pf.IntVar(&maxValue, "max", 400, "largest generated value")
	pf.StringVar(&resetMode, "reset-mode", "restore", "reset behaviour: restore or rebase")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.BoolVar(&debug, "debug", false, "write debug logs")
	pf.StringVar(&dataDir, "data", ".sortviz", "data directory for saved runs")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick an algorithm and settings before visualizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := tuiLogger()
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunInteractive(cfg, logger)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "play a sort in the terminal without the interactive UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colours")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "replay a saved run and print its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run-id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Delete(args[0])
		},
	}

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print the operation log",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceLog,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check every algorithm against random arrays",
		Args:  cobra.NoArgs,
		RunE:  verifyAlgorithms,
	}
	verifyCmd.Flags().IntVar(&trials, "trials", 200, "number of arrays")
	verifyCmd.Flags().IntVar(&verifyMaxSize, "max-size", 64, "largest array")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "plot operation counts against array size",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntVar(&sweepSteps, "steps", 12, "number of sizes")
	benchCmd.Flags().IntVar(&benchMaxSize, "max-size", 120, "largest array")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [algorithm]",
		Short: "export the operation log to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return exportTrace(cmd, args, "json") },
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [algorithm]",
		Short: "export the operation log to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return exportTrace(cmd, args, "csv") },
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	replayCmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "validate and replay an exported JSON or CSV log",
		Args:  cobra.ExactArgs(1),
		RunE:  replayTrace,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [algorithm]",
		Short: "render a frame of the sort as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&at, "at", -1, "number of operations to apply (-1 for all)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	svgCmd.Flags().BoolVar(&svgInv, "inversions", false, "plot inversions over time instead of bars")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of sorts and report counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(menuCmd, runCmd, runsCmd, showCmd, deleteCmd, traceCmd, verifyCmd, benchCmd, exportJSONCmd, exportCSVCmd, replayCmd, svgCmd, presetsCmd, algorithmsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("min") {
		cfg.MinValue = minValue
	}
	if flags.Changed("max") {
		cfg.MaxValue = maxValue
	}
	if flags.Changed("reset-mode") {
		cfg.ResetMode = resetMode
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// tuiLogger logs to a file while the alternate screen is active, since
// stderr would corrupt the display.
func tuiLogger() (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(debugLog, "sortviz")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
