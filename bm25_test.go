package fitmd_test

import (
	"testing"

	"github.com/fwojciec/fitmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("lowercases and splits on non-alphanumeric boundaries", func(t *testing.T) {
		t.Parallel()

		tokens := fitmd.Tokenize("Contact us at support@example.com")

		assert.Equal(t, []string{"contact", "us", "at", "support", "example", "com"}, tokens)
	})

	t.Run("discards tokens shorter than two runes", func(t *testing.T) {
		t.Parallel()

		tokens := fitmd.Tokenize("Today's a b10 x")

		assert.Equal(t, []string{"today", "b10"}, tokens)
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fitmd.Tokenize(""))
		assert.Empty(t, fitmd.Tokenize("!!! ???"))
	})
}

func TestRankBM25(t *testing.T) {
	t.Parallel()

	t.Run("retains the matching block and drops the unrelated one", func(t *testing.T) {
		t.Parallel()

		weather := newBlock("p", "", "", "Today's weather forecast calls for rain")
		contact := newBlock("p", "", "", "Contact us at support@example.com")

		fitmd.RankBM25([]*fitmd.ContentBlock{weather, contact}, fitmd.DefaultBM25Options("weather forecast"))

		assert.True(t, weather.Retained)
		assert.False(t, contact.Retained)
	})

	t.Run("block with repeated query terms outscores an equal-length block without them", func(t *testing.T) {
		t.Parallel()

		match := newBlock("p", "", "", "weather forecast weather forecast weather forecast")
		miss := newBlock("p", "", "", "contact details contact details contact details")

		fitmd.RankBM25([]*fitmd.ContentBlock{match, miss}, fitmd.DefaultBM25Options("weather forecast"))

		assert.Greater(t, match.Score, miss.Score)
		assert.Zero(t, miss.Score)
	})

	t.Run("falls back to the top three blocks when nothing clears the threshold", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", "apple apple apple banana"),
			newBlock("p", "", "", "apple apple banana banana"),
			newBlock("p", "", "", "apple banana banana banana"),
			newBlock("p", "", "", "cherry cherry cherry cherry"),
			newBlock("p", "", "", "cherry cherry cherry cherry"),
		}

		opts := fitmd.DefaultBM25Options("apple")
		opts.Threshold = 100
		fitmd.RankBM25(blocks, opts)

		assert.True(t, blocks[0].Retained)
		assert.True(t, blocks[1].Retained)
		assert.True(t, blocks[2].Retained)
		assert.False(t, blocks[3].Retained)
		assert.False(t, blocks[4].Retained)
	})

	t.Run("fallback ties break in document order", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", "cherry cherry"),
			newBlock("p", "", "", "cherry cherry"),
			newBlock("p", "", "", "cherry cherry"),
			newBlock("p", "", "", "cherry cherry"),
		}

		fitmd.RankBM25(blocks, fitmd.DefaultBM25Options("apple"))

		assert.True(t, blocks[0].Retained)
		assert.True(t, blocks[1].Retained)
		assert.True(t, blocks[2].Retained)
		assert.False(t, blocks[3].Retained)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		run := func() []float64 {
			blocks := []*fitmd.ContentBlock{
				newBlock("p", "", "", "the quick brown fox jumps over the lazy dog"),
				newBlock("p", "", "", "pack my box with five dozen liquor jugs"),
				newBlock("p", "", "", "quick quick fox fox"),
			}
			fitmd.RankBM25(blocks, fitmd.DefaultBM25Options("quick fox"))
			scores := make([]float64, len(blocks))
			for i, b := range blocks {
				scores[i] = b.Score
			}
			return scores
		}

		assert.Equal(t, run(), run())
	})

	t.Run("handles empty block sets", func(t *testing.T) {
		t.Parallel()

		require.NotPanics(t, func() {
			fitmd.RankBM25(nil, fitmd.DefaultBM25Options("anything"))
		})
	})

	t.Run("clamps out-of-range parameters", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", "weather forecast for the week ahead"),
		}

		opts := fitmd.BM25Options{Query: "weather", Threshold: -5, K1: -1, B: 2}
		require.NotPanics(t, func() {
			fitmd.RankBM25(blocks, opts)
		})
		assert.True(t, blocks[0].Retained)
	})
}
