package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/goquery"
	"github.com/dazhiyu0235/post-rewriter/htmltomarkdown"
	prhttp "github.com/dazhiyu0235/post-rewriter/http"
	"github.com/dazhiyu0235/post-rewriter/readability"
	"github.com/dazhiyu0235/post-rewriter/rewrite"
	"github.com/dazhiyu0235/post-rewriter/rod"
	prslog "github.com/dazhiyu0235/post-rewriter/slog"
	"github.com/dazhiyu0235/post-rewriter/trafilatura"
	"github.com/dazhiyu0235/post-rewriter/wordpress"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store and Fetcher override the defaults when set. Used by
	// end-to-end tests to substitute fakes.
	Store   postrewriter.PostStore
	Fetcher postrewriter.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("postrewrite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'postrewrite --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store := m.Store
	if store == nil {
		client, err := wordpress.NewClient(wordpress.Config{
			BaseURL:     cli.URL,
			Username:    cli.Username,
			AppPassword: cli.AppPassword,
		}, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set WORDPRESS_URL, WORDPRESS_USERNAME and WORDPRESS_APP_PASSWORD")
			return err
		}
		if err := client.TestConnection(ctx); err != nil {
			return fmt.Errorf("failed to connect to %s: %s", cli.URL, postrewriter.ErrorMessage(err))
		}
		store = client
	}
	deps.Store = store

	fetcher := m.Fetcher
	if fetcher == nil {
		if cli.Render {
			rf, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		} else {
			fetcher = prhttp.NewFetcher()
		}
	}
	defer fetcher.Close()

	var extractor postrewriter.Extractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor(logger)
	}

	var converter postrewriter.Converter
	if cli.Markdown {
		converter = htmltomarkdown.NewConverter()
	}

	deps.Rewriter = &rewrite.Rewriter{
		Store:     prslog.NewLoggingPostStore(store, logger),
		Fetcher:   prslog.NewLoggingFetcher(fetcher, logger),
		Extractor: extractor,
		Processor: goquery.NewProcessor(logger),
		Slicer:    goquery.NewSlicer(logger),
		Truncator: goquery.NewTruncator(nil, logger),
		Merger:    goquery.NewMerger(logger),
		Converter: converter,
		Logger:    logger,
	}

	return kongCtx.Run(deps)
}
