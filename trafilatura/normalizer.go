// Package trafilatura provides an alternate main-content normalizer backed
// by go-trafilatura's statistical extraction, for pages where the
// selector-driven policy normalizer picks the wrong region.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/fitmd"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements fitmd.Normalizer at compile time.
var _ fitmd.Normalizer = (*Normalizer)(nil)

// Normalizer wraps go-trafilatura to isolate main content from HTML.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize processes raw HTML and returns the main content. The title comes
// from page metadata. Empty or whitespace-only input yields an empty result,
// never an error.
func (n *Normalizer) Normalize(rawHTML string) (*fitmd.NormalizeResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &fitmd.NormalizeResult{}, nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		// Extraction failure is a degenerate page, not a caller error.
		return &fitmd.NormalizeResult{}, nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, fitmd.Errorf(fitmd.EINTERNAL, "failed to serialize content: %v", err)
		}
	}

	return &fitmd.NormalizeResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
