// Package slog provides logging decorators for fitmd domain interfaces.
package slog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/fitmd"
)

// Ensure PageConverter implements fitmd.PageConverter at compile time.
var _ fitmd.PageConverter = (*PageConverter)(nil)

// PageConverter wraps a fitmd.PageConverter with structured logging.
type PageConverter struct {
	next   fitmd.PageConverter
	logger *slog.Logger
}

// NewPageConverter creates a new PageConverter.
func NewPageConverter(next fitmd.PageConverter, logger *slog.Logger) *PageConverter {
	return &PageConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the outcome.
func (c *PageConverter) Convert(rawHTML, baseURL string, opts fitmd.FilterOptions) (*fitmd.MarkdownResult, error) {
	begin := time.Now()

	result, err := c.next.Convert(rawHTML, baseURL, opts)
	if err != nil {
		c.logger.Error("page conversion failed",
			"url", baseURL,
			"filter", filterName(opts),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}

	citations := 0
	if result.ReferencesMarkdown != "" {
		citations = strings.Count(result.ReferencesMarkdown, "\n") + 1
	}
	c.logger.Info("page conversion",
		"url", baseURL,
		"filter", filterName(opts),
		"words", result.WordCount,
		"citations", citations,
		"duration", time.Since(begin),
	)
	return result, nil
}

func filterName(opts fitmd.FilterOptions) string {
	switch opts.(type) {
	case fitmd.PruningOptions:
		return "pruning"
	case fitmd.BM25Options:
		return "bm25"
	default:
		return "none"
	}
}
