package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/oplog"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/scenario"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// prepare resolves the config, lets a positional argument pick the
// algorithm and draws the array.
func prepare(cmd *cobra.Command, args []string) (*config.Config, []int, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	snapshot, err := dataset.NewGenerator(cfg.Seed).Snapshot(cfg.DatasetOptions())
	if err != nil {
		return nil, nil, err
	}
	return cfg, snapshot, nil
}

func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, snapshot, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	logger := cliLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	renderer := tui.NewLiveRenderer(os.Stdout, cfg.FPS, !noColor)
	rec := metrics.NewRecorder()
	opts := append(cfg.SchedulerOptions(),
		playback.WithLogger(logger),
		playback.WithObserver(renderer),
		playback.WithObserver(rec),
	)

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, playback.WithObserver(metrics.NewCollector(reg)))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "addr", metricsAddr, "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	sched, err := playback.New(snapshot, cfg.Algorithm, opts...)
	if err != nil {
		return err
	}

	renderer.Start()
	start := time.Now()
	runErr := sched.Run(ctx)
	renderer.Stop()

	elapsed := time.Since(start)
	st := sched.Status()
	fmt.Printf("\n%s: %d/%d ops in %v (seed %d)\n", st.Algorithm, st.Cursor, st.LogLen, elapsed.Round(time.Millisecond), cfg.Seed)
	values := rec.Snapshot()
	for _, name := range rec.Names() {
		fmt.Printf("  %-16s %g\n", name, values[name])
	}

	if saveRun {
		runID, err := storage.New(dataDir).Save(storage.RunMetadata{
			Algorithm: st.Algorithm,
			Seed:      cfg.Seed,
			Size:      st.Size,
			Pattern:   cfg.Pattern,
			MinValue:  cfg.MinValue,
			MaxValue:  cfg.MaxValue,
			Speed:     st.Speed,
			Ops:       st.LogLen,
			Applied:   st.Cursor,
			Elapsed:   elapsed,
			Metrics:   values,
		})
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("saved run %s\n", runID)
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Println("interrupted")
		return nil
	}
	return runErr
}

func traceLog(cmd *cobra.Command, args []string) error {
	cfg, snapshot, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	log, err := algorithms.Generate(cfg.Algorithm, snapshot)
	if err != nil {
		return err
	}

	fmt.Printf("algorithm: %s\n", log.Algorithm())
	fmt.Printf("snapshot:  %v\n", snapshot)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tOP")
	for i := 0; i < log.Len(); i++ {
		op := log.At(i)
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, op.Kind(), op)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := log.Counts()
	fmt.Printf("\n%d ops:", log.Len())
	for _, k := range oplog.Kinds() {
		fmt.Printf(" %s=%d", k, counts[k])
	}
	fmt.Println()
	return nil
}

func verifyAlgorithms(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	runner := scenario.NewRunner(nil, cliLogger())
	failures, runs, err := runner.RunTrials(cmd.Context(), &scenario.Trials{
		NumTrials: trials,
		MaxSize:   verifyMaxSize,
		Seed:      s,
	})
	if err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Printf("FAIL %s %v: %v\n", f.Algorithm, f.Snapshot, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d runs failed (seed %d)", len(failures), runs, s)
	}
	fmt.Printf("ok: %d runs across %d algorithms (seed %d)\n", runs, len(algorithms.Names()), s)
	return nil
}

var seriesColors = []struct {
	graph asciigraph.AnsiColor
	text  lipgloss.Color
}{
	{asciigraph.Red, "9"},
	{asciigraph.Yellow, "11"},
	{asciigraph.Green, "10"},
	{asciigraph.Blue, "12"},
	{asciigraph.Magenta, "13"},
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = algorithms.Names()
	}
	if len(names) > len(seriesColors) {
		return fmt.Errorf("bench plots at most %d algorithms", len(seriesColors))
	}
	steps := max(2, sweepSteps)

	runner := scenario.NewRunner(nil, cliLogger())
	series := make([][]float64, 0, len(names))
	var sizes []int
	rows := map[string][]scenario.Result{}
	start := time.Now()

	for _, name := range names {
		results, err := runner.RunSweep(cmd.Context(), &scenario.Sweep{
			Algorithm: name,
			Pattern:   dataset.Pattern(cfg.Pattern),
			MinSize:   max(1, benchMaxSize/steps),
			MaxSize:   benchMaxSize,
			NumSteps:  steps,
			Seed:      cfg.Seed,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		ops := make([]float64, len(results))
		sizes = sizes[:0]
		for i, r := range results {
			ops[i] = float64(r.Ops)
			sizes = append(sizes, r.Size)
		}
		series = append(series, ops)
		rows[name] = results
	}

	colors := make([]asciigraph.AnsiColor, len(names))
	for i := range names {
		colors[i] = seriesColors[i].graph
	}
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(15),
		asciigraph.Width(60),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("operations vs size (%s input, %d..%d)", cfg.Pattern, sizes[0], sizes[len(sizes)-1])),
	))

	var legend []string
	for i, name := range names {
		legend = append(legend, lipgloss.NewStyle().Foreground(seriesColors[i].text).Render("── "+name))
	}
	fmt.Println("\n  " + strings.Join(legend, "  ") + "\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "SIZE\t%s\t\n", strings.Join(names, "\t"))
	for i, n := range sizes {
		cells := make([]string, len(names))
		for j, name := range names {
			r := rows[name][i]
			cells[j] = fmt.Sprintf("%d/%d/%d", r.Compares(), r.Swaps(), r.Sets())
		}
		fmt.Fprintf(w, "%d\t%s\t\n", n, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncells are compares/swaps/sets; %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func exportTrace(cmd *cobra.Command, args []string, format string) error {
	cfg, snapshot, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	log, err := algorithms.Generate(cfg.Algorithm, snapshot)
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	trace := export.NewTrace(snapshot, log)
	switch format {
	case "csv":
		err = export.WriteCSV(w, trace)
	default:
		err = export.WriteJSON(w, trace)
	}
	if err != nil {
		closeOut()
		return fmt.Errorf("export %s: %w", format, err)
	}
	if err := closeOut(); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %d ops to %s\n", log.Len(), outFile)
	}
	return nil
}

func replayTrace(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var trace *export.Trace
	if strings.EqualFold(filepath.Ext(args[0]), ".csv") {
		trace, err = export.ReadCSV(f)
	} else {
		trace, err = export.ReadJSON(f)
	}
	if err != nil {
		return err
	}

	log, err := trace.Log()
	if err != nil {
		return fmt.Errorf("invalid log: %w", err)
	}
	out, err := log.Replay(trace.Snapshot)
	if err != nil {
		return err
	}

	fmt.Printf("algorithm: %s\n", log.Algorithm())
	fmt.Printf("ops:       %d\n", log.Len())
	fmt.Printf("before:    %v\n", trace.Snapshot)
	fmt.Printf("after:     %v\n", out)
	if !slices.IsSorted(out) {
		return scenario.ErrNotSorted
	}
	fmt.Println("sorted:    yes")
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, snapshot, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	log, err := algorithms.Generate(cfg.Algorithm, snapshot)
	if err != nil {
		return err
	}
	th := viz.GetTheme(cfg.Theme)

	var svg string
	if svgInv {
		svg = export.TraceToSVG(export.InversionTrace(snapshot, log), svgWidth, svgHeight, string(th.Sorted))
		if svg == "" {
			return fmt.Errorf("nothing to plot: %s made no writes", cfg.Algorithm)
		}
	} else {
		n := at
		if n < 0 || n > log.Len() {
			n = log.Len()
		}
		svg = export.FrameToSVG(display.Fold(snapshot, log, n), svgWidth, svgHeight, th.Palette())
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg+"\n"); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		p := config.GetPreset(args[0])
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tALGORITHM\tSIZE\tSPEED\tPATTERN\tRESET")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", name, p.Algorithm, p.Size, p.Speed, p.Pattern, p.ResetMode)
	}
	return w.Flush()
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := algorithms.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tCOMPLEXITY\tDESCRIPTION")
	for i, name := range reg.List() {
		info, _ := reg.Describe(name)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, info.Name, info.Complexity, info.Description)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}

	runner := scenario.NewRunner(nil, cliLogger())
	results, runErr := runner.RunScenario(cmd.Context(), sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tSIZE\tPATTERN\tSEED\tOPS\tCOMPARES\tSWAPS\tSETS\tSORTED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			i+1, r.Algorithm, r.Size, r.Pattern, r.Seed, r.Ops, r.Compares(), r.Swaps(), r.Sets(), r.Sorted)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tPATTERN\tOPS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d/%d\t%v\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Pattern,
			run.Applied,
			run.Ops,
			run.Elapsed.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	snapshot, log, err := meta.Regenerate(nil)
	if err != nil {
		return err
	}

	ms := metrics.Standard()
	metrics.Observe(log, snapshot, ms...)

	fmt.Printf("run:       %s\n", meta.ID)
	fmt.Printf("algorithm: %s  seed %d  size %d  %s\n", meta.Algorithm, meta.Seed, meta.Size, meta.Pattern)
	fmt.Printf("played:    %d/%d ops in %v at speed %d\n", meta.Applied, meta.Ops, meta.Elapsed.Round(time.Millisecond), meta.Speed)
	for _, m := range ms {
		fmt.Printf("  %-16s %g\n", m.Name(), m.Value())
	}

	series := export.InversionTrace(snapshot, log)
	if len(series) > 1 {
		data := make([]float64, len(series))
		for i, v := range series {
			data[i] = float64(v)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("inversions per write")))
	}
	return nil
}
