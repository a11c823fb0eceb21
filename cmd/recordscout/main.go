package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recordscout"
	"github.com/fwojciec/recordscout/catalog"
	"github.com/fwojciec/recordscout/gemini"
	"github.com/fwojciec/recordscout/goquery"
	"github.com/fwojciec/recordscout/htmltomarkdown"
	rshttp "github.com/fwojciec/recordscout/http"
	"github.com/fwojciec/recordscout/messaging"
	"github.com/fwojciec/recordscout/pipeline"
	"github.com/fwojciec/recordscout/readability"
	"github.com/fwojciec/recordscout/rod"
	rsslog "github.com/fwojciec/recordscout/slog"
	"github.com/fwojciec/recordscout/sqlite"
	"github.com/fwojciec/recordscout/trafilatura"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Model access. Defaults to the Gemini API when nil.
	Provider recordscout.ModelProvider
	Lister   recordscout.ModelLister
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recordscout"),
		kong.Description("Identify the music release on a web page and look up its catalog entry."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recordscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)
	messages := catalog.NewLocalizer(cli.Lang)
	deps.Logger = logger
	deps.Messages = messages

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if dir := filepath.Dir(m.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RECORDSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	configs := sqlite.NewConfigService(m.DB)
	provider := m.Provider
	if provider == nil {
		provider = gemini.NewModelProvider()
	}
	provider = rsslog.NewLoggingModelProvider(provider, logger)
	lister := m.Lister
	if lister == nil {
		lister = gemini.NewModelLister()
	}
	models := sqlite.NewModelCache(m.DB, rsslog.NewLoggingModelLister(lister, logger))

	deps.Config = configs
	deps.Provider = provider
	deps.Models = models
	deps.Refresher = models

	switch cmd {
	case "lookup", "serve":
		isLookup := cmd == "lookup"
		cleaner, domain, render := cli.Serve.Cleaner, cli.Serve.Catalog, false
		if isLookup {
			cleaner, domain, render = cli.Lookup.Cleaner, cli.Lookup.Catalog, cli.Lookup.Render
		}

		var manager *rod.BrowserManager
		if isLookup || render {
			manager, err = rod.NewBrowserManager()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer manager.Close()
		}

		limiter := rshttp.NewDomainLimiter(1.0)
		httpFetcher := rshttp.NewFetcher(rshttp.WithLimiter(limiter))
		var fetcher recordscout.Fetcher = httpFetcher
		if render {
			fetcher = rod.NewFetcher(manager)
		}
		defer fetcher.Close()

		parsers := messaging.NewParserHost(newCleaner(cleaner, logger), messaging.WithHostLogger(logger))
		defer parsers.Close()

		progress := messaging.NewBroadcaster(0)
		orchestrator := &pipeline.Orchestrator{
			Config:   configs,
			Models:   provider,
			Searcher: rsslog.NewLoggingSearcher(rshttp.NewSearcher(httpFetcher), logger),
			Fetcher:  rsslog.NewLoggingFetcher(fetcher, logger),
			Parser:   parsers,
			Progress: progress,
			Messages: messages,
			Catalog:  recordscout.NewCatalog(domain),
			Logger:   logger,
		}

		rt := messaging.NewRuntime()
		orchestrator.Register(rt)
		parsers.Register(rt)
		deps.Runtime = rt
		deps.Progress = progress

		if isLookup {
			browser := rod.NewBrowser(manager, goquery.NewContentScript(messages))
			defer browser.Close()
			deps.Tabs = browser
			deps.Pages = messaging.NewTabClient(browser, messages)
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newCleaner returns the page cleaner run in the parsing context.
func newCleaner(name string, logger *slog.Logger) recordscout.Cleaner {
	var c recordscout.Cleaner
	switch name {
	case "trafilatura":
		c = trafilatura.NewCleaner()
	case "text":
		c = goquery.NewTextCleaner()
	default:
		name = "readability"
		c = readability.NewCleaner(readability.WithConverter(htmltomarkdown.NewConverter()))
	}
	return rsslog.NewLoggingCleaner(c, name, logger)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "recordscout.db"
	}
	return filepath.Join(dir, "recordscout", "recordscout.db")
}
