package fitmd

// Converter converts HTML to Markdown without filtering or citation
// bookkeeping.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from a Normalizer).
	Convert(html string) (string, error)
}

// PageConverter runs the whole pipeline: normalize, filter, generate.
type PageConverter interface {
	// Convert turns raw HTML into a MarkdownResult. baseURL is used to
	// resolve relative links; opts selects the filtering strategy (nil
	// means no filtering). Degenerate input produces a well-formed,
	// possibly-empty result rather than an error.
	Convert(rawHTML, baseURL string, opts FilterOptions) (*MarkdownResult, error)
}
