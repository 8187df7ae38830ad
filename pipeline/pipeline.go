// Package pipeline wires the conversion stages together: normalize raw HTML,
// segment and filter content blocks, and generate the Markdown result.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/fitmd"
	"github.com/fwojciec/fitmd/goquery"
	"github.com/fwojciec/fitmd/markdown"
	"golang.org/x/sync/errgroup"
)

// Ensure Converter implements fitmd.PageConverter at compile time.
var _ fitmd.PageConverter = (*Converter)(nil)

// Converter runs the full page-conversion pipeline. It is stateless across
// calls: concurrent conversions share only the immutable policy tables.
type Converter struct {
	normalizer fitmd.Normalizer
	generator  fitmd.Generator
}

// New creates a Converter. Nil arguments select the defaults: the
// policy-driven goquery normalizer and the native Markdown generator.
func New(normalizer fitmd.Normalizer, generator fitmd.Generator) *Converter {
	if normalizer == nil {
		normalizer = goquery.NewNormalizer(nil)
	}
	if generator == nil {
		generator = markdown.NewGenerator()
	}
	return &Converter{
		normalizer: normalizer,
		generator:  generator,
	}
}

// Convert turns raw HTML into a MarkdownResult. baseURL resolves relative
// links; opts selects the filtering strategy (nil means no filtering).
// Degenerate input produces a well-formed, possibly-empty result.
func (c *Converter) Convert(rawHTML, baseURL string, opts fitmd.FilterOptions) (*fitmd.MarkdownResult, error) {
	norm, err := c.normalizer.Normalize(rawHTML)
	if err != nil {
		return nil, err
	}

	in := &fitmd.GenerateInput{
		ContentHTML:   norm.ContentHTML,
		BaseURL:       baseURL,
		FallbackTitle: norm.Title,
	}

	if fitmd.Filtered(opts) {
		blocks, err := goquery.Blocks(norm.ContentHTML)
		if err != nil {
			return nil, err
		}
		fitmd.ApplyFilter(blocks, opts)
		in.FitHTML = goquery.FitHTML(blocks)
		in.Filtered = true
	}

	result, err := c.generator.Generate(in)
	if err != nil {
		return nil, err
	}

	result.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64String(result.RawMarkdown))
	return result, nil
}

// Page is one unit of work for ConvertAll.
type Page struct {
	HTML    string
	URL     string
	Options fitmd.FilterOptions
}

// ConvertAll converts independent pages concurrently with at most
// concurrency conversions in flight. Results preserve input order; the
// first error cancels the remaining work.
func (c *Converter) ConvertAll(ctx context.Context, pages []*Page, concurrency int) ([]*fitmd.MarkdownResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]*fitmd.MarkdownResult, len(pages))
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := c.Convert(page.HTML, page.URL, page.Options)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
