package fitmd

import "strings"

// Tag-type weights for pruning. Content-bearing tags weigh more than
// generic containers.
var pruneTagWeights = map[string]float64{
	"article":    1.5,
	"section":    1.2,
	"p":          1.0,
	"blockquote": 1.0,
	"pre":        1.0,
	"h1":         1.0,
	"h2":         0.9,
	"h3":         0.8,
	"table":      0.9,
	"ul":         0.8,
	"ol":         0.8,
	"dl":         0.8,
	"figure":     0.8,
	"div":        0.7,
	"li":         0.5,
}

const pruneDefaultTagWeight = 0.5

// Expected text length per tag type. Blocks shorter than the baseline score
// proportionally lower; the factor saturates at 1 once the baseline is met.
var pruneLengthBaselines = map[string]int{
	"article":    200,
	"section":    150,
	"div":        100,
	"p":          60,
	"blockquote": 60,
	"pre":        60,
	"table":      80,
	"ul":         40,
	"ol":         40,
	"h1":         15,
	"h2":         15,
	"h3":         15,
	"li":         20,
}

const pruneDefaultLengthBaseline = 50

// Class/id substrings that mark likely boilerplate.
var boilerplateKeywords = []string{
	"nav", "footer", "sidebar", "ad", "comment", "menu", "header",
	"promo", "banner", "social", "share", "widget", "breadcrumb",
}

const boilerplateKeywordPenalty = 0.5

// dynamicThresholdFactor is the fraction of the mean block score used as the
// per-page threshold in dynamic mode.
const dynamicThresholdFactor = 0.8

// Prune scores each block with the boilerplate heuristic and marks blocks
// as retained or dropped in place. Document order is preserved; no
// reordering by score.
func Prune(blocks []*ContentBlock, opts PruningOptions) {
	opts = clampPruning(opts)

	for _, b := range blocks {
		b.Score = pruneScore(b)
	}

	threshold := opts.Threshold
	if opts.ThresholdType == ThresholdDynamic {
		threshold = dynamicThresholdFactor * meanScore(blocks)
	}

	for _, b := range blocks {
		b.Retained = b.WordCount >= opts.MinWordThreshold && b.Score >= threshold
	}

	// Headings are not prose: the word-count floor and score threshold
	// would drop nearly all of them. A heading stands or falls with the
	// content block that follows it.
	for i, b := range blocks {
		if isHeading(b.Tag) {
			b.Retained = nextContentRetained(blocks, i)
		}
	}
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func nextContentRetained(blocks []*ContentBlock, i int) bool {
	for _, b := range blocks[i+1:] {
		if !isHeading(b.Tag) {
			return b.Retained
		}
	}
	return false
}

// pruneScore computes the composite score for one block:
// tag weight, scaled down by link density, by text length relative to the
// tag's baseline, and by a penalty when the class/id looks like boilerplate.
func pruneScore(b *ContentBlock) float64 {
	weight, ok := pruneTagWeights[b.Tag]
	if !ok {
		weight = pruneDefaultTagWeight
	}

	score := weight
	score *= 1 - b.LinkDensity()
	score *= lengthFactor(b.Tag, b.TextLen)
	if hasBoilerplateKeyword(b.Class) || hasBoilerplateKeyword(b.ID) {
		score *= boilerplateKeywordPenalty
	}
	return score
}

func lengthFactor(tag string, textLen int) float64 {
	baseline, ok := pruneLengthBaselines[tag]
	if !ok {
		baseline = pruneDefaultLengthBaseline
	}
	if textLen >= baseline {
		return 1
	}
	return float64(textLen) / float64(baseline)
}

func hasBoilerplateKeyword(attr string) bool {
	if attr == "" {
		return false
	}
	attr = strings.ToLower(attr)
	for _, kw := range boilerplateKeywords {
		if strings.Contains(attr, kw) {
			return true
		}
	}
	return false
}

func meanScore(blocks []*ContentBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	var sum float64
	for _, b := range blocks {
		sum += b.Score
	}
	return sum / float64(len(blocks))
}

func clampPruning(opts PruningOptions) PruningOptions {
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	if opts.MinWordThreshold < 0 {
		opts.MinWordThreshold = 0
	}
	return opts
}
