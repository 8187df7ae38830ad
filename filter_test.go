package fitmd_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/fitmd"
	"github.com/stretchr/testify/assert"
)

func TestApplyFilter(t *testing.T) {
	t.Parallel()

	prose := strings.Repeat("word ", 30)

	t.Run("nil options retain every block", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", prose),
			newBlock("nav", "nav", "", "Home About"),
		}

		fitmd.ApplyFilter(blocks, nil)

		assert.Len(t, fitmd.Retained(blocks), 2)
	})

	t.Run("NoFilter retains every block", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", prose),
			newBlock("div", "footer", "", "Copyright"),
		}

		fitmd.ApplyFilter(blocks, fitmd.NoFilter{})

		assert.Len(t, fitmd.Retained(blocks), 2)
	})

	t.Run("dispatches to pruning", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", prose),
			newBlock("div", "sidebar", "", "Links links links"),
		}

		fitmd.ApplyFilter(blocks, fitmd.DefaultPruningOptions())

		assert.True(t, blocks[0].Retained)
		assert.False(t, blocks[1].Retained)
	})

	t.Run("dispatches to BM25", func(t *testing.T) {
		t.Parallel()

		blocks := []*fitmd.ContentBlock{
			newBlock("p", "", "", "Today's weather forecast calls for rain"),
			newBlock("p", "", "", "Contact us at support@example.com"),
		}

		fitmd.ApplyFilter(blocks, fitmd.DefaultBM25Options("weather forecast"))

		assert.True(t, blocks[0].Retained)
		assert.False(t, blocks[1].Retained)
	})
}

func TestFiltered(t *testing.T) {
	t.Parallel()

	assert.False(t, fitmd.Filtered(nil))
	assert.False(t, fitmd.Filtered(fitmd.NoFilter{}))
	assert.True(t, fitmd.Filtered(fitmd.DefaultPruningOptions()))
	assert.True(t, fitmd.Filtered(fitmd.DefaultBM25Options("query")))
}

func TestRetained(t *testing.T) {
	t.Parallel()

	blocks := []*fitmd.ContentBlock{
		{Tag: "p", Retained: true},
		{Tag: "nav"},
		{Tag: "section", Retained: true},
	}

	retained := fitmd.Retained(blocks)

	assert.Len(t, retained, 2)
	assert.Equal(t, "p", retained[0].Tag)
	assert.Equal(t, "section", retained[1].Tag)
}

func TestLinkDensity(t *testing.T) {
	t.Parallel()

	assert.Zero(t, (&fitmd.ContentBlock{}).LinkDensity())
	assert.Equal(t, 0.5, (&fitmd.ContentBlock{TextLen: 100, LinkTextLen: 50}).LinkDensity())
}
