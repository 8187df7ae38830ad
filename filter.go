package fitmd

// ThresholdType selects how the pruning threshold is applied.
type ThresholdType int

// Threshold modes for PruningOptions.
const (
	// ThresholdFixed compares every block score against the configured
	// threshold value.
	ThresholdFixed ThresholdType = iota

	// ThresholdDynamic derives a per-page threshold from the observed
	// score distribution (a fraction of the mean score), adapting to
	// pages that are uniformly sparse or uniformly dense.
	ThresholdDynamic
)

// FilterOptions selects a content-filtering strategy. It is a closed union:
// NoFilter, PruningOptions, and BM25Options are the only variants, and
// ApplyFilter is the single dispatch point.
type FilterOptions interface {
	filterOptions()
}

// NoFilter retains every block and signals the generator to skip fit-output
// generation entirely.
type NoFilter struct{}

func (NoFilter) filterOptions() {}

// PruningOptions configures the query-free boilerplate filter.
type PruningOptions struct {
	// Threshold is the minimum score a block must reach in fixed mode.
	Threshold float64

	// ThresholdType selects fixed or dynamic threshold application.
	ThresholdType ThresholdType

	// MinWordThreshold drops any block with fewer words, regardless of
	// score.
	MinWordThreshold int
}

func (PruningOptions) filterOptions() {}

// DefaultPruningOptions returns pruning options with the defaults used when
// callers have no page-specific tuning.
func DefaultPruningOptions() PruningOptions {
	return PruningOptions{
		Threshold:        0.48,
		ThresholdType:    ThresholdFixed,
		MinWordThreshold: 2,
	}
}

// BM25Options configures the query-driven relevance filter.
type BM25Options struct {
	// Query is the relevance query the blocks are scored against.
	Query string

	// Threshold is the minimum BM25 score for retention.
	Threshold float64

	// K1 and B are the BM25 term-frequency saturation and length
	// normalization parameters.
	K1 float64
	B  float64
}

func (BM25Options) filterOptions() {}

// DefaultBM25Options returns BM25 options for the given query with the
// standard parameter defaults.
func DefaultBM25Options(query string) BM25Options {
	return BM25Options{
		Query:     query,
		Threshold: 1.0,
		K1:        1.2,
		B:         0.75,
	}
}

// ApplyFilter scores blocks in place and marks each as retained or dropped
// according to opts. Blocks stay in document order. A nil opts value is
// treated as NoFilter. Out-of-range option values are clamped, never
// rejected.
func ApplyFilter(blocks []*ContentBlock, opts FilterOptions) {
	switch o := opts.(type) {
	case PruningOptions:
		Prune(blocks, o)
	case BM25Options:
		RankBM25(blocks, o)
	default: // nil or NoFilter
		for _, b := range blocks {
			b.Retained = true
		}
	}
}

// Filtered reports whether opts requests fit-output generation.
func Filtered(opts FilterOptions) bool {
	switch opts.(type) {
	case PruningOptions, BM25Options:
		return true
	default:
		return false
	}
}

// Retained returns the retained blocks, in document order.
func Retained(blocks []*ContentBlock) []*ContentBlock {
	out := make([]*ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Retained {
			out = append(out, b)
		}
	}
	return out
}
