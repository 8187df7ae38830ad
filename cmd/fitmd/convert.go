package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/fitmd"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	rawHTML, err := c.readInput(deps)
	if err != nil {
		return err
	}

	// Plain-text mode: normalize and strip markup, no markdown
	if c.Text {
		text, err := deps.Text.Text(rawHTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", fitmd.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, text)
		return nil
	}

	// Commonmark engine: normalize, then hand off to the library converter
	if c.Engine == "commonmark" {
		return c.runCommonmark(deps, rawHTML)
	}

	result, err := deps.Converter.Convert(rawHTML, c.URL, c.filterOptions())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fitmd.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		return c.reportTokens(deps, result.RawMarkdown)
	}

	output := result.RawMarkdown
	if c.Fit && result.FitMarkdown != "" {
		output = result.FitMarkdown
	}
	fmt.Fprint(deps.Stdout, output)

	if c.References && result.ReferencesMarkdown != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", result.ReferencesMarkdown)
	}

	return c.reportTokens(deps, output)
}

func (c *ConvertCmd) runCommonmark(deps *Dependencies, rawHTML string) error {
	normalized, err := deps.Normalizer.Normalize(rawHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fitmd.ErrorMessage(err))
		return err
	}

	md, err := deps.Plain.Convert(normalized.ContentHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", fitmd.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return c.reportTokens(deps, md)
}

// filterOptions translates the CLI flags into filter options, starting from
// each filter's defaults so unset flags keep their documented behavior.
func (c *ConvertCmd) filterOptions() fitmd.FilterOptions {
	switch c.Filter {
	case "pruning":
		opts := fitmd.DefaultPruningOptions()
		if c.Threshold >= 0 {
			opts.Threshold = c.Threshold
		}
		if c.Dynamic {
			opts.ThresholdType = fitmd.ThresholdDynamic
		}
		opts.MinWordThreshold = c.MinWords
		return opts
	case "bm25":
		opts := fitmd.DefaultBM25Options(c.Query)
		if c.Threshold >= 0 {
			opts.Threshold = c.Threshold
		}
		opts.K1 = c.K1
		opts.B = c.B
		return opts
	default:
		return fitmd.NoFilter{}
	}
}

func (c *ConvertCmd) readInput(deps *Dependencies) (string, error) {
	if c.File == "" || c.File == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	return string(data), nil
}

func (c *ConvertCmd) reportTokens(deps *Dependencies, text string) error {
	if deps.Tokens == nil {
		return nil
	}

	count, err := deps.Tokens.CountTokens(deps.Ctx, text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error counting tokens: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stderr, "tokens: %d\n", count)
	return nil
}
