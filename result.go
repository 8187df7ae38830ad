package fitmd

import "strings"

// MarkdownResult is the outcome of converting one page. It is constructed
// once per invocation and never mutated or persisted by this module.
type MarkdownResult struct {
	// RawMarkdown is the conversion of the full normalized content.
	// Always set (possibly empty for degenerate input).
	RawMarkdown string `json:"rawMarkdown"`

	// FitMarkdown is the conversion of the retained blocks only.
	// Empty when no filtering ran.
	FitMarkdown string `json:"fitMarkdown,omitempty"`

	// FitHTML is the serialized markup of the retained blocks, in document
	// order. Set exactly when FitMarkdown is set.
	FitHTML string `json:"fitHtml,omitempty"`

	// Title is the first h1 in document order, falling back to the
	// document's title element. Empty if neither exists.
	Title string `json:"title,omitempty"`

	// ReferencesMarkdown is the ordered citation list: one numbered entry
	// per unique URL, in first-occurrence order.
	ReferencesMarkdown string `json:"referencesMarkdown,omitempty"`

	// WordCount is the whitespace-delimited token count of FitMarkdown when
	// filtering ran, otherwise of RawMarkdown.
	WordCount int `json:"wordCount"`

	// ContentHash is the xxhash64 of RawMarkdown, hex-encoded. Lets callers
	// detect content changes without storing the markdown itself.
	ContentHash string `json:"contentHash,omitempty"`
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
