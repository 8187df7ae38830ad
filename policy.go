package fitmd

// CleaningPolicy holds the constant tag and selector tables that drive HTML
// normalization. Policies are immutable: the default instance is built once
// and shared by all invocations.
type CleaningPolicy struct {
	// RemoveTags are removed as whole subtrees.
	RemoveTags []string

	// UnwrapTags are spliced out, keeping their children in place. Used
	// only by the plain-text extraction path.
	UnwrapTags []string

	// MainSelectors are candidate main-content selectors, highest
	// priority first. The first match wins.
	MainSelectors []string

	// FallbackRemoveSelectors are removed from the document body when no
	// main-content candidate matches.
	FallbackRemoveSelectors []string
}

var defaultPolicy = &CleaningPolicy{
	RemoveTags: []string{
		"script", "style", "noscript", "iframe", "svg", "canvas",
		"video", "audio", "form", "input", "button", "select", "textarea",
	},
	UnwrapTags: []string{
		"span", "font", "b", "i", "u", "strong", "em",
	},
	MainSelectors: []string{
		"main", "article", "[role=main]", "#content", ".content", "#main", ".main",
	},
	FallbackRemoveSelectors: []string{
		"nav", "header", "footer", "aside", ".sidebar", "#sidebar", ".nav", ".menu",
	},
}

// DefaultCleaningPolicy returns the process-wide cleaning policy.
// Callers must not mutate the returned value.
func DefaultCleaningPolicy() *CleaningPolicy {
	return defaultPolicy
}
