package fitmd

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// bm25FallbackTop is the number of highest-scoring blocks retained when no
// block clears the threshold. Keeps weakly-matching pages from producing an
// empty result.
const bm25FallbackTop = 3

// RankBM25 scores each block against the query using BM25 over the page's
// blocks as the corpus and marks blocks at or above the threshold as
// retained. If nothing clears the threshold, the bm25FallbackTop
// highest-scoring blocks are retained instead (ties broken by document
// order). Document order is preserved.
func RankBM25(blocks []*ContentBlock, opts BM25Options) {
	opts = clampBM25(opts)

	if len(blocks) == 0 {
		return
	}
	queryTerms := Tokenize(opts.Query)

	// Per-block term frequencies and corpus statistics.
	termFreqs := make([]map[string]int, len(blocks))
	docLens := make([]int, len(blocks))
	docFreq := make(map[string]int)
	totalLen := 0
	for i, b := range blocks {
		tokens := Tokenize(b.Text)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		termFreqs[i] = tf
		docLens[i] = len(tokens)
		totalLen += len(tokens)
		for term := range tf {
			docFreq[term]++
		}
	}
	avgLen := float64(totalLen) / float64(len(blocks))

	n := len(blocks)
	for i, b := range blocks {
		var score float64
		for _, term := range queryTerms {
			tf := float64(termFreqs[i][term])
			if tf == 0 {
				continue
			}
			idf := math.Log(1 + (float64(n-docFreq[term])+0.5)/(float64(docFreq[term])+0.5))
			norm := 1 - opts.B + opts.B*float64(docLens[i])/avgLen
			score += idf * tf * (opts.K1 + 1) / (tf + opts.K1*norm)
		}
		b.Score = score
		b.Retained = score >= opts.Threshold
	}

	if anyRetained(blocks) {
		return
	}

	// Fallback floor: retain the top-N blocks by score.
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return blocks[order[a]].Score > blocks[order[b]].Score
	})
	for i := 0; i < bm25FallbackTop && i < len(order); i++ {
		blocks[order[i]].Retained = true
	}
}

func anyRetained(blocks []*ContentBlock) bool {
	for _, b := range blocks {
		if b.Retained {
			return true
		}
	}
	return false
}

func clampBM25(opts BM25Options) BM25Options {
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	if opts.K1 <= 0 {
		opts.K1 = 1.2
	}
	if opts.B < 0 {
		opts.B = 0
	} else if opts.B > 1 {
		opts.B = 1
	}
	return opts
}

// Tokenize lowercases s, splits it on non-alphanumeric boundaries, and
// discards tokens shorter than two runes. No stemming is applied: exact
// term matching keeps scoring deterministic and cheap, at the cost of
// missing inflected forms.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
