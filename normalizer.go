package fitmd

// NormalizeResult holds the normalized main content of a page.
type NormalizeResult struct {
	// Title is the text of the document's title element. May be empty.
	Title string

	// ContentHTML is the cleaned main-content region as markup.
	// Empty for empty or content-free input.
	ContentHTML string
}

// Normalizer parses raw HTML defensively, strips non-content elements, and
// isolates the main-content region.
type Normalizer interface {
	// Normalize processes raw, possibly malformed HTML. Empty or
	// whitespace-only input yields an empty result, never an error.
	Normalize(html string) (*NormalizeResult, error)
}
