package fitmd

// GenerateInput carries everything the Markdown generator needs for one
// invocation.
type GenerateInput struct {
	// ContentHTML is the full normalized content region.
	ContentHTML string

	// FitHTML is the serialized markup of the retained blocks, in document
	// order. Ignored unless Filtered is true.
	FitHTML string

	// Filtered reports whether a filter other than NoFilter ran. When
	// false the result carries no fit output.
	Filtered bool

	// BaseURL is the source URL used to resolve relative links and image
	// sources. May be empty.
	BaseURL string

	// FallbackTitle is used when the content has no h1 (typically the
	// document's title element).
	FallbackTitle string
}

// Generator converts normalized content into a MarkdownResult, extracting
// the title and numbered citations along the way.
type Generator interface {
	Generate(in *GenerateInput) (*MarkdownResult, error)
}
