package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/sentidash/internal/datasource"
	"github.com/vanderheijden86/sentidash/pkg/chart"
	"github.com/vanderheijden86/sentidash/pkg/config"
	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/export"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/store"
	"github.com/vanderheijden86/sentidash/pkg/ui"
	"github.com/vanderheijden86/sentidash/pkg/version"
	"github.com/vanderheijden86/sentidash/pkg/watcher"
)

// flags holds parsed command line options. Zero values mean "use config".
type flags struct {
	help, version bool
	data          string
	seed          int64
	seedSet       bool
	preset        string
	tab           string
	noWatch       bool
	table         bool
	plain         bool
	snapshot      bool
	exportDir     string
	format        string
	report        bool
	wizard        bool
	cpuProfile    string
}

func newFlagSet(f *flags, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("sentidash", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVar(&f.help, "help", false, "Show help")
	fs.BoolVar(&f.version, "version", false, "Show version")
	fs.StringVar(&f.data, "data", "", "Fixture file (.json, .yaml, .db); empty uses synthetic data")
	fs.Int64Var(&f.seed, "seed", 0, "Seed for synthetic data")
	fs.StringVar(&f.preset, "preset", "", "Date preset: "+presetHelp())
	fs.StringVar(&f.tab, "tab", "", "Start tab: questions, speakers, comparison, definitions")
	fs.BoolVar(&f.noWatch, "no-watch", false, "Do not reload the fixture when it changes")
	fs.BoolVar(&f.table, "table", false, "Show the question table instead of the carousel")
	fs.BoolVar(&f.plain, "plain", false, "Disable colors in charts and markdown (also set by NO_COLOR)")
	fs.BoolVar(&f.snapshot, "snapshot", false, "Print the dashboard view as JSON and exit")
	fs.StringVar(&f.exportDir, "export", "", "Write every chart to `DIR` and exit")
	fs.StringVar(&f.format, "format", "", "Export format: svg or png")
	fs.BoolVar(&f.report, "report", false, "With -export, also write report.md")
	fs.BoolVar(&f.wizard, "wizard", false, "Choose export options interactively")
	fs.StringVar(&f.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	return fs
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			f.seedSet = true
		}
	})
	return f, nil
}

// applyFlags layers command line options over the config file.
func applyFlags(cfg config.Config, f flags) (config.Config, error) {
	if f.data != "" {
		cfg.Data.Path = f.data
	}
	if f.seedSet {
		cfg.Data.Seed = f.seed
	}
	if f.noWatch {
		cfg.Data.Watch = false
	}
	if f.preset != "" {
		cfg.UI.DefaultPreset = f.preset
	}
	if f.tab != "" {
		cfg.UI.DefaultTab = f.tab
	}
	if f.table {
		cfg.UI.ShowTable = true
	}
	if f.format != "" {
		cfg.Export.Format = f.format
	}
	if f.exportDir != "" {
		cfg.Export.Dir = f.exportDir
	}
	return cfg, cfg.Validate()
}

// newStore builds the store and applies the configured starting state.
func newStore(cfg config.Config, ds model.Dataset, now func() time.Time) (*store.Store, error) {
	st := store.New(ds, now)
	r, err := cfg.InitialRange(st.Today())
	if err != nil {
		return nil, err
	}
	st.Dispatch(store.SetDateRange{Range: r})
	if cfg.UI.DefaultTab != "" {
		tab, err := store.ParseTab(cfg.UI.DefaultTab)
		if err != nil {
			return nil, err
		}
		st.Dispatch(store.SelectTab{Tab: tab})
	}
	return st, nil
}

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if f.cpuProfile != "" {
		file, err := os.Create(f.cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if f.help {
		fmt.Println("Usage: sentidash [options]")
		fmt.Println("\nA terminal dashboard of analyst sentiment on earnings calls.")
		var discard flags
		newFlagSet(&discard, os.Stdout).PrintDefaults()
		os.Exit(0)
	}
	if f.version {
		fmt.Printf("sentidash %s\n", version.String())
		os.Exit(0)
	}
	defer debug.Close()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
	}
	cfg, err := applyFlags(cfg, f)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := datasource.Open(cfg.Data.Path, cfg.Data.Seed)
	if err != nil {
		return err
	}
	ds, err := datasource.Load(ctx, provider)
	if err != nil {
		return err
	}
	st, err := newStore(cfg, ds, nil)
	if err != nil {
		return err
	}

	switch {
	case f.wizard:
		opts, err := export.NewWizard(cfg.Export).Run()
		if err != nil {
			return err
		}
		return runExport(ctx, os.Stdout, st.View(), opts)
	case f.exportDir != "":
		format, err := chart.ParseFormat(cfg.Export.Format)
		if err != nil {
			return err
		}
		return runExport(ctx, os.Stdout, st.View(), export.Options{Dir: cfg.Export.Dir, Format: format, Report: f.report})
	case f.snapshot || !term.IsTerminal(int(os.Stdout.Fd())):
		return writeSnapshot(os.Stdout, st.View())
	}

	var w *watcher.Watcher
	if cfg.Data.Watch && provider.Info().Watchable() {
		w, err = startWatcher(ctx, provider.Info().Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
		}
	}
	m := ui.NewModel(st, ui.Options{Provider: provider, Watcher: w, ShowTable: cfg.UI.ShowTable, Plain: plainOutput(f)})
	return runTUIProgram(m)
}

// plainOutput reports whether the TUI should render without colors.
func plainOutput(f flags) bool {
	return f.plain || os.Getenv("NO_COLOR") != ""
}

func startWatcher(ctx context.Context, path string) (*watcher.Watcher, error) {
	w, err := watcher.New(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	debug.Logw("watching fixture", "path", path, "mode", w.Mode())
	return w, nil
}

// runExport writes charts (and optionally the report) and lists the files.
func runExport(ctx context.Context, out io.Writer, v store.View, opts export.Options) error {
	if opts.Image.Subtitle == "" {
		opts.Image.Subtitle = v.Range.String()
	}
	results, err := export.Charts(ctx, v.Trends, opts)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s\t%s\n", r.Panel, r.Path)
	}
	if opts.Report {
		path, err := export.WriteReport(opts.Dir, v, results, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "report\t%s\n", path)
	}
	return nil
}

// writeSnapshot prints the derived view as indented JSON.
func writeSnapshot(out io.Writer, v store.View) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set SENTIDASH_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SENTIDASH_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}

// presetHelp lists the accepted preset tokens.
func presetHelp() string {
	tokens := make([]string, 0, len(daterange.Presets()))
	for _, p := range daterange.Presets() {
		tokens = append(tokens, string(p))
	}
	return strings.Join(tokens, ", ")
}
