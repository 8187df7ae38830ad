package pipeline_test

import (
	"context"
	"testing"

	"github.com/fwojciec/fitmd"
	"github.com/fwojciec/fitmd/mock"
	"github.com/fwojciec/fitmd/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements fitmd.PageConverter at compile time.
var _ fitmd.PageConverter = (*pipeline.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	conv := pipeline.New(nil, nil)

	t.Run("pruning keeps the article and drops the nav", func(t *testing.T) {
		t.Parallel()

		html := `<nav>Home About</nav><article><h1>Title</h1><p>Real content here with more than five words.</p></article>`
		opts := fitmd.PruningOptions{Threshold: 0.1, ThresholdType: fitmd.ThresholdFixed, MinWordThreshold: 5}

		result, err := conv.Convert(html, "https://example.com/post", opts)

		require.NoError(t, err)
		assert.Contains(t, result.FitMarkdown, "# Title")
		assert.Contains(t, result.FitMarkdown, "Real content here with more than five words.")
		assert.NotContains(t, result.FitMarkdown, "Home About")
		assert.Equal(t, "Title", result.Title)
	})

	t.Run("bm25 keeps the relevant block and drops the rest", func(t *testing.T) {
		t.Parallel()

		html := `<div id="content">
<p>Today's weather forecast calls for rain</p>
<p>Contact us at support@example.com</p>
</div>`

		result, err := conv.Convert(html, "", fitmd.DefaultBM25Options("weather forecast"))

		require.NoError(t, err)
		assert.Contains(t, result.FitMarkdown, "weather forecast calls for rain")
		assert.NotContains(t, result.FitMarkdown, "support@example.com")
	})

	t.Run("no filter leaves fit output absent", func(t *testing.T) {
		t.Parallel()

		html := `<article><h1>Title</h1><p>Content</p></article>`

		result, err := conv.Convert(html, "", fitmd.NoFilter{})

		require.NoError(t, err)
		assert.NotEmpty(t, result.RawMarkdown)
		assert.Empty(t, result.FitMarkdown)
		assert.Empty(t, result.FitHTML)
		assert.Equal(t, fitmd.CountWords(result.RawMarkdown), result.WordCount)
	})

	t.Run("nil options behave like no filter", func(t *testing.T) {
		t.Parallel()

		result, err := conv.Convert(`<article><p>Content</p></article>`, "", nil)

		require.NoError(t, err)
		assert.Empty(t, result.FitMarkdown)
		assert.Empty(t, result.FitHTML)
	})

	t.Run("empty input produces an empty well-formed result", func(t *testing.T) {
		t.Parallel()

		result, err := conv.Convert("", "", fitmd.NoFilter{})

		require.NoError(t, err)
		assert.Empty(t, result.RawMarkdown)
		assert.Zero(t, result.WordCount)
	})

	t.Run("repeated runs are byte-identical", func(t *testing.T) {
		t.Parallel()

		html := `<article><h1>Title</h1><p>Body with a <a href="/link">link</a>.</p></article>`
		opts := fitmd.DefaultPruningOptions()

		first, err := conv.Convert(html, "https://example.com/", opts)
		require.NoError(t, err)
		second, err := conv.Convert(html, "https://example.com/", opts)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("content hash is stable and content-sensitive", func(t *testing.T) {
		t.Parallel()

		a1, err := conv.Convert(`<p>alpha content</p>`, "", nil)
		require.NoError(t, err)
		a2, err := conv.Convert(`<p>alpha content</p>`, "", nil)
		require.NoError(t, err)
		b, err := conv.Convert(`<p>beta content</p>`, "", nil)
		require.NoError(t, err)

		assert.Equal(t, a1.ContentHash, a2.ContentHash)
		assert.NotEqual(t, a1.ContentHash, b.ContentHash)
		assert.Len(t, a1.ContentHash, 16)
	})

	t.Run("normalizer errors propagate", func(t *testing.T) {
		t.Parallel()

		failing := pipeline.New(&mock.Normalizer{
			NormalizeFn: func(string) (*fitmd.NormalizeResult, error) {
				return nil, fitmd.Errorf(fitmd.EINVALID, "bad input")
			},
		}, nil)

		_, err := failing.Convert("<p>x</p>", "", nil)

		require.Error(t, err)
		assert.Equal(t, fitmd.EINVALID, fitmd.ErrorCode(err))
	})
}

func TestConverter_ConvertAll(t *testing.T) {
	t.Parallel()

	conv := pipeline.New(nil, nil)

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		pages := []*pipeline.Page{
			{HTML: `<article><h1>One</h1><p>First page body</p></article>`},
			{HTML: `<article><h1>Two</h1><p>Second page body</p></article>`},
			{HTML: `<article><h1>Three</h1><p>Third page body</p></article>`},
		}

		results, err := conv.ConvertAll(context.Background(), pages, 2)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "One", results[0].Title)
		assert.Equal(t, "Two", results[1].Title)
		assert.Equal(t, "Three", results[2].Title)
	})

	t.Run("per-page filter options apply", func(t *testing.T) {
		t.Parallel()

		pages := []*pipeline.Page{
			{HTML: `<article><p>Plain page body text</p></article>`},
			{
				HTML:    `<article><p>Today's weather forecast calls for rain</p><p>Contact us at support@example.com</p></article>`,
				Options: fitmd.DefaultBM25Options("weather forecast"),
			},
		}

		results, err := conv.ConvertAll(context.Background(), pages, 1)

		require.NoError(t, err)
		assert.Empty(t, results[0].FitMarkdown)
		assert.Contains(t, results[1].FitMarkdown, "weather forecast")
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pages := []*pipeline.Page{{HTML: `<p>one</p>`}, {HTML: `<p>two</p>`}}

		_, err := conv.ConvertAll(ctx, pages, 1)

		assert.Error(t, err)
	})

	t.Run("no pages yields no results", func(t *testing.T) {
		t.Parallel()

		results, err := conv.ConvertAll(context.Background(), nil, 4)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
