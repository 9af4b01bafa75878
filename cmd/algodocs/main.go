package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/algodocs/internal/datasource"
	"github.com/vanderheijden86/algodocs/pkg/catalog"
	"github.com/vanderheijden86/algodocs/pkg/config"
	"github.com/vanderheijden86/algodocs/pkg/debug"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/logging"
	"github.com/vanderheijden86/algodocs/pkg/metrics"
	"github.com/vanderheijden86/algodocs/pkg/registry"
	"github.com/vanderheijden86/algodocs/pkg/ui"
	"github.com/vanderheijden86/algodocs/pkg/version"
	"github.com/vanderheijden86/algodocs/pkg/watcher"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup finishes before the process exits.
func run() int {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configFlag := flag.String("config", "", "Config file (default "+config.ConfigPath()+")")
	storeFlag := flag.String("store", "", "Taskbar store backend: file, sqlite or memory")
	stateDirFlag := flag.String("state-dir", "", "Directory holding the taskbar store and log file")
	themeFlag := flag.String("theme", "", "Color theme: auto, dark or light")
	debugFlag := flag.Bool("debug", false, "Log at debug level")
	pickFlag := flag.Bool("pick", false, "Choose the page to open from a menu")
	listWindowsFlag := flag.Bool("list-windows", false, "Print the minimized windows as JSON and exit")
	removeWindowFlag := flag.String("remove-window", "", "Remove a minimized window by id and exit")
	clearWindowsFlag := flag.Bool("clear-windows", false, "Remove every minimized window and exit")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: algodocs [options] [location]")
		fmt.Println("\nA terminal reference desk for algorithms and data structures.")
		fmt.Println("location is a page path such as /docs/heap-sort?tab=examples.")
		flag.PrintDefaults()
		return 0
	}

	if *versionFlag {
		fmt.Printf("algodocs %s\n", version.String())
		return 0
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := applyFlags(&cfg, *storeFlag, *stateDirFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	headless := *listWindowsFlag || *removeWindowFlag != "" || *clearWindowsFlag
	logger := logging.Init(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.ResolvedLogFile(),
		Console: headless,
		Stderr:  os.Stderr,
	})
	defer logging.Close()
	if *debugFlag || debug.Enabled() {
		debug.SetEnabled(true)
	}

	slot, reg, err := openRegistry(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening taskbar store: %v\n", err)
		return 1
	}
	defer slot.Close()

	if headless {
		if err := runWindowCommand(os.Stdout, reg, *listWindowsFlag, *removeWindowFlag, *clearWindowsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cat, results, err := loadCatalog(ctx, cfg, logger)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return 1
	}
	reportSkippedPages(os.Stderr, results)

	startRaw := cfg.UI.StartLocation
	if flag.NArg() > 0 {
		startRaw = flag.Arg(0)
	}
	if *pickFlag {
		picked, err := pickPage(cat)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		startRaw = picked
	}
	start := resolveStart(cat, startRaw)

	w := startWatcher(cfg, slot, logger)
	if w != nil {
		defer w.Stop()
	}

	m := ui.NewModel(ui.Options{
		Catalog:   cat,
		Registry:  reg,
		Start:     start,
		Theme:     ui.ThemeByName(lipgloss.DefaultRenderer(), cfg.UI.Theme),
		Watcher:   w,
		Favorites: cfg.Favorites,
		Logger:    logging.WithComponent("ui"),
	})

	err = runTUIProgram(m)
	debug.Dump("metrics", metrics.AllTimingStats())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running algodocs: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags layers command line overrides on top of the config file.
func applyFlags(cfg *config.Config, store, stateDir, theme string) error {
	if store != "" {
		if _, err := datasource.ParseSourceType(store); err != nil {
			return err
		}
		cfg.Store.Backend = store
	}
	if stateDir != "" {
		cfg.Store.Dir = stateDir
	}
	if theme != "" {
		switch strings.ToLower(theme) {
		case "auto", "dark", "light":
			cfg.UI.Theme = strings.ToLower(theme)
		default:
			return fmt.Errorf("unknown theme %q (want auto, dark or light)", theme)
		}
	}
	return nil
}

func openRegistry(cfg config.Config, logger *slog.Logger) (datasource.Slot, *registry.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	typ, err := datasource.ParseSourceType(cfg.Store.Backend)
	if err != nil {
		return nil, nil, err
	}
	src := datasource.DataSource{Type: typ, Dir: cfg.ResolvedStoreDir()}
	slot, err := datasource.Open(src, registry.SlotKey, logging.WithComponent("datasource"))
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("taskbar store opened", "source", src.String())
	return slot, registry.New(slot, registry.WithLogger(logger)), nil
}

// runWindowCommand performs one taskbar maintenance command.
func runWindowCommand(w io.Writer, reg *registry.Registry, list bool, remove string, clear bool) error {
	switch {
	case clear:
		if err := reg.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Taskbar cleared")
		return nil
	case remove != "":
		if _, ok := reg.Get(remove); !ok {
			return fmt.Errorf("no minimized window with id %q", remove)
		}
		if err := reg.Remove(remove); err != nil {
			return err
		}
		fmt.Fprintf(w, "Removed %s\n", remove)
		return nil
	case list:
		d := reg.Load()
		out := struct {
			Status  string                      `json:"status"`
			Windows []registry.WindowDescriptor `json:"windows"`
		}{Status: d.Status.String(), Windows: d.Windows}
		if out.Windows == nil {
			out.Windows = []registry.WindowDescriptor{}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return nil
}

func loadCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (*catalog.Catalog, []catalog.LoadResult, error) {
	dirs := append([]string{filepath.Join(config.DataDir(), "pages")}, cfg.Catalog.ExtraDirs...)
	loader := catalog.NewLoader(
		catalog.WithDirs(dirs...),
		catalog.WithLogger(logger),
	)
	defer debug.LogEnterExit("loadCatalog")()
	return loader.Load(ctx)
}

func reportSkippedPages(w io.Writer, results []catalog.LoadResult) {
	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(w, "Warning: skipped page %s: %v\n", r.Source, r.Error)
		}
	}
}

// resolveStart parses the launch location. A bare page name such as
// "heap-sort" resolves under /docs when that page exists.
func resolveStart(cat *catalog.Catalog, raw string) location.Location {
	loc := location.Parse(raw)
	if loc.IsRoot() {
		return loc
	}
	if _, ok := cat.Get(loc.PathOrRoot()); ok {
		return loc
	}
	alt := location.Location{Path: "/docs" + loc.PathOrRoot(), Query: loc.Query}
	if _, ok := cat.Get(alt.Path); ok {
		return alt
	}
	return loc
}

func pickOptions(cat *catalog.Catalog) []huh.Option[string] {
	pages := cat.Pages()
	opts := make([]huh.Option[string], 0, len(pages)+1)
	opts = append(opts, huh.NewOption("Catalog", location.Root))
	for _, p := range pages {
		opts = append(opts, huh.NewOption(p.Title, p.Path))
	}
	return opts
}

func pickPage(cat *catalog.Catalog) (string, error) {
	picked := location.Root
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which page do you want to open?").
				Options(pickOptions(cat)...).
				Value(&picked),
		),
	).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}

// startWatcher watches the taskbar slot so windows minimized in another
// terminal show up on this taskbar. It returns nil when watching is off or
// the store lives only in this process.
func startWatcher(cfg config.Config, slot datasource.Slot, logger *slog.Logger) *watcher.Watcher {
	if !cfg.WatchEnabled() {
		return nil
	}
	if typ, _ := datasource.ParseSourceType(cfg.Store.Backend); typ == datasource.SourceTypeMemory {
		return nil
	}
	if p := slot.Path(); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			logger.Warn("taskbar watch disabled", "err", err)
			return nil
		}
	}
	w := watcher.New(slot,
		watcher.WithLogger(logging.WithComponent("watcher")),
		watcher.WithOnError(func(err error) {
			logger.Warn("taskbar watch error", "err", err)
		}),
	)
	if err := w.Start(); err != nil {
		logger.Warn("taskbar watch disabled", "err", err)
		return nil
	}
	return w
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

	// Optional auto-quit for automated tests: set ALGODOCS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("ALGODOCS_TUI_AUTOCLOSE_MS"); v != "" {
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
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
