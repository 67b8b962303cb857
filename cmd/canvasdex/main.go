package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/notioc/canvasdex"
	"github.com/notioc/canvasdex/extract"
	"github.com/notioc/canvasdex/goquery"
	cdhttp "github.com/notioc/canvasdex/http"
	"github.com/notioc/canvasdex/htmltomarkdown"
	"github.com/notioc/canvasdex/mem"
	cdslog "github.com/notioc/canvasdex/slog"
	"github.com/notioc/canvasdex/trafilatura"
)

// webFetchRPS is the polite per-domain rate for scraped course surfaces.
const webFetchRPS = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher is retained so web resources can be released on exit.
	Fetcher canvasdex.Fetcher

	// Extractor is exposed for end-to-end testing.
	Extractor canvasdex.ContentExtractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases program resources.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
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
		kong.Name("canvasdex"),
		kong.Description("Resilient content discovery over a Canvas LMS instance."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'canvasdex --help' to see available commands")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := m.wire(cli, deps, logger); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the service graph from the CLI's connection flags.
func (m *Main) wire(cli *CLI, deps *Dependencies, logger *slog.Logger) error {
	client, err := cdhttp.NewClient(cli.BaseURL, cli.Token)
	if err != nil {
		return fmt.Errorf("canvas client: %s", canvasdex.ErrorMessage(err))
	}

	paginator := &extract.Paginator{Client: client}
	converter := htmltomarkdown.NewConverter()

	m.Fetcher = cdhttp.NewFetcher(cli.Token)

	detector := cdslog.NewLoggingDetector(&extract.Detector{Client: client}, logger)
	api := &extract.APIDiscoverer{Paginator: paginator, Converter: converter}
	web := &extract.WebDiscoverer{
		BaseURL:   cli.BaseURL,
		Fetcher:   m.Fetcher,
		Refs:      goquery.NewExtractor(),
		Pages:     trafilatura.NewExtractor(),
		Converter: converter,
		Limiter:   extract.NewRateLimiter(webFetchRPS),
		Logger:    logger,
	}

	cache := mem.NewCache()
	engine := extract.NewEngine(cache, detector, api, web, logger)
	m.Extractor = cdslog.NewLoggingExtractor(engine, logger)

	deps.Extractor = m.Extractor
	deps.Courses = &extract.CourseService{Paginator: paginator}
	return nil
}
