package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/fitmd"
	"github.com/fwojciec/fitmd/gemini"
	"github.com/fwojciec/fitmd/goquery"
	"github.com/fwojciec/fitmd/htmltomarkdown"
	"github.com/fwojciec/fitmd/markdown"
	"github.com/fwojciec/fitmd/pipeline"
	fitslog "github.com/fwojciec/fitmd/slog"
	"github.com/fwojciec/fitmd/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("fitmd"),
		kong.Description("Convert HTML pages to clean, LLM-ready markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	// Validate: the BM25 filter is meaningless without a query
	if cli.Filter == "bm25" && cli.Query == "" {
		return fmt.Errorf("query is required when using the bm25 filter")
	}
	if cli.Engine == "commonmark" && cli.Filter != "none" {
		return fmt.Errorf("the commonmark engine does not support content filtering")
	}

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	var normalizer fitmd.Normalizer
	switch cli.Extractor {
	case "trafilatura":
		normalizer = trafilatura.NewNormalizer()
	default:
		normalizer = goquery.NewNormalizer(nil)
	}
	deps.Normalizer = normalizer

	// The plain-text path needs the policy normalizer regardless of the
	// extractor chosen for markdown output.
	deps.Text = goquery.NewNormalizer(nil)

	deps.Plain = htmltomarkdown.NewConverter()

	var converter fitmd.PageConverter = pipeline.New(normalizer, markdown.NewGenerator())
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		converter = fitslog.NewPageConverter(converter, logger)
	}
	deps.Converter = converter

	if cli.TokenModel != "" {
		counter, err := gemini.NewTokenCounter(cli.TokenModel)
		if err != nil {
			return fmt.Errorf("failed to load tokenizer for %s: %w", cli.TokenModel, err)
		}
		deps.Tokens = counter
	}

	// Create and run the convert command
	cmd := &ConvertCmd{
		File:       cli.File,
		URL:        cli.URL,
		Filter:     cli.Filter,
		Query:      cli.Query,
		Threshold:  cli.Threshold,
		Dynamic:    cli.Dynamic,
		MinWords:   cli.MinWords,
		K1:         cli.K1,
		B:          cli.B,
		Engine:     cli.Engine,
		Text:       cli.Text,
		Fit:        cli.Fit,
		References: cli.References,
		JSON:       cli.JSON,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL        string  `short:"u" help:"Base URL for resolving relative links"`
	Filter     string  `short:"f" default:"none" enum:"none,pruning,bm25" help:"Content filter to apply (none, pruning, bm25)"`
	Query      string  `short:"q" help:"Relevance query for the bm25 filter"`
	Threshold  float64 `default:"-1" help:"Filter score threshold (negative selects the filter's default)"`
	Dynamic    bool    `help:"Derive the pruning threshold from the page's score distribution"`
	MinWords   int     `default:"2" help:"Minimum word count for a block to survive pruning"`
	K1         float64 `default:"1.2" help:"BM25 term-frequency saturation parameter"`
	B          float64 `default:"0.75" help:"BM25 length normalization parameter"`
	Extractor  string  `default:"policy" enum:"policy,trafilatura" help:"Main-content extractor (policy, trafilatura)"`
	Engine     string  `default:"native" enum:"native,commonmark" help:"Markdown engine (native, commonmark)"`
	Text       bool    `help:"Emit normalized plain text instead of markdown"`
	Fit        bool    `help:"Print the filtered markdown instead of the raw markdown"`
	References bool    `short:"r" help:"Append the numbered link references"`
	JSON       bool    `help:"Emit the full conversion result as JSON"`
	Verbose    bool    `short:"v" help:"Log conversion details to stderr"`
	TokenModel string  `help:"Count output tokens with the given Gemini model"`
	File       string  `arg:"" optional:"" help:"HTML file to convert (default: read stdin)"`
}
