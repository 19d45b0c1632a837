package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/adapter"
	"github.com/mmcdole/flick/internal/adapter/omdb"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/metrics"
	"github.com/mmcdole/flick/internal/search"
	"github.com/mmcdole/flick/internal/store"
	"github.com/mmcdole/flick/internal/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// options holds command-line flags
type options struct {
	configPath string
	print      bool
	query      string
	year       string
	kind       string
	page       int
	id         string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.BoolVar(&opts.print, "print", false, "print one page of results instead of starting the TUI")
	flag.StringVar(&opts.query, "q", "", "search text (defaults to the configured seed)")
	flag.StringVar(&opts.year, "y", "", "release year (4 digits)")
	flag.StringVar(&opts.kind, "t", "", "title type: movie, series or episode")
	flag.IntVar(&opts.page, "p", 1, "results page")
	flag.StringVar(&opts.id, "id", "", "print the details of one IMDb ID")
	flag.Parse()

	if showVersion {
		fmt.Printf("flick %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting flick", "version", Version)

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	if strings.TrimSpace(cfg.Provider.APIKey) == "" && interactive {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			return fmt.Errorf("%w: set OMDB_API_KEY or provider.api_key in %s", err,
				filepath.Join(adapter.GetConfigPath(), "config.yaml"))
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Metrics.Addr != "" {
		shutdown := serveMetrics(cfg.Metrics.Addr, logger)
		defer shutdown()
	}

	client := omdb.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, logger)

	seed := cfg.Search.Seed
	if opts.query != "" {
		seed = opts.query
	}
	st := store.New(client, seed,
		store.WithLogger(logger),
		store.WithFencing(cfg.Search.FenceStale),
	)
	if err := applyFlags(st, opts); err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	ctrl := search.NewController(st,
		search.WithDelay(cfg.Search.Debounce),
		search.WithLogger(logger),
		search.WithContext(ctx),
	)
	defer ctrl.Close()

	if opts.print || opts.id != "" || !interactive {
		return runPrint(ctx, ctrl, st, opts.id, os.Stdout, os.Stderr, terminalWidth())
	}

	model := tui.NewModel(ctrl, st, tui.Options{
		ShowHelp: cfg.UI.ShowHelp,
		Logger:   logger,
		Context:  ctx,
	})
	ctrl.Start()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func loadConfig(path string) (*adapter.Config, error) {
	if path != "" {
		return adapter.LoadConfigFile(path)
	}
	return adapter.LoadConfig()
}

// applyFlags seeds the initial query from command-line flags.
// Page is applied last since the other setters reset it.
func applyFlags(st *store.Store, opts options) error {
	if opts.year != "" {
		st.SetYear(opts.year)
	}
	if opts.kind != "" {
		kind, err := domain.ParseKind(opts.kind)
		if err != nil {
			return err
		}
		st.SetType(kind)
	}
	if opts.page > 1 {
		st.SetPage(opts.page)
	}
	return nil
}

// serveMetrics exposes /metrics on addr and returns a shutdown func
func serveMetrics(addr string, logger *slog.Logger) func() {
	metrics.Register(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// runSetupFlow asks for an API key when none is configured
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to flick!")
	fmt.Println()
	fmt.Println("flick needs an OMDb API key (free at https://www.omdbapi.com/apikey.aspx).")

	for {
		fmt.Print("Enter your API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}
		cfg.Provider.APIKey = apiKey
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", filepath.Join(adapter.GetConfigPath(), "config.yaml"))
	fmt.Println()
	return nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
