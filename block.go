package fitmd

// ContentBlock is one retain/drop unit during filtering: a top-level subtree
// of the normalized content region together with the statistics the scorers
// need. Blocks are created fresh per filtering pass, kept in document order,
// and never mutated after scoring.
type ContentBlock struct {
	// Tag is the element name of the block root (lowercase).
	Tag string

	// Class and ID hold the block root's class and id attribute values.
	Class string
	ID    string

	// HTML is the serialized markup of the whole subtree.
	HTML string

	// Text is the whitespace-normalized plain text of the subtree.
	Text string

	// TextLen is the length of Text in runes.
	TextLen int

	// LinkTextLen is the length in runes of the text wrapped in anchors.
	LinkTextLen int

	// WordCount is the whitespace-delimited token count of Text.
	WordCount int

	// Score is the relevance score assigned by a filter.
	Score float64

	// Retained reports whether the filter kept the block.
	Retained bool
}

// LinkDensity returns the ratio of anchor-wrapped text to total text.
// Empty blocks have density 0.
func (b *ContentBlock) LinkDensity() float64 {
	if b.TextLen == 0 {
		return 0
	}
	return float64(b.LinkTextLen) / float64(b.TextLen)
}
