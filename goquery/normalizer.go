// Package goquery implements HTML normalization, plain-text extraction, and
// content-block segmentation using CSS selectors.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fitmd"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements fitmd.Normalizer at compile time.
var _ fitmd.Normalizer = (*Normalizer)(nil)

// Normalizer isolates the main-content region of a page according to a
// cleaning policy.
type Normalizer struct {
	policy *fitmd.CleaningPolicy
}

// NewNormalizer creates a Normalizer. A nil policy selects the default
// cleaning policy.
func NewNormalizer(policy *fitmd.CleaningPolicy) *Normalizer {
	if policy == nil {
		policy = fitmd.DefaultCleaningPolicy()
	}
	return &Normalizer{policy: policy}
}

// Normalize parses raw HTML defensively, removes comments, non-content and
// hidden elements, and returns the main-content region. Empty or
// whitespace-only input yields an empty result, never an error.
func (n *Normalizer) Normalize(rawHTML string) (*fitmd.NormalizeResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &fitmd.NormalizeResult{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fitmd.Errorf(fitmd.EINVALID, "failed to parse HTML: %v", err)
	}

	title := normalizeSpace(doc.Find("title").First().Text())

	n.clean(doc)

	contentHTML, err := n.mainContent(doc)
	if err != nil {
		return nil, err
	}

	return &fitmd.NormalizeResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// Text extracts whitespace-normalized plain text: cleaning plus splicing out
// inline wrappers from the unwrap set, so that bold or emphasized words do
// not introduce spurious line breaks. Lines correspond to the remaining
// block-level elements.
func (n *Normalizer) Text(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fitmd.Errorf(fitmd.EINVALID, "failed to parse HTML: %v", err)
	}

	n.clean(doc)

	for _, tag := range n.policy.UnwrapTags {
		doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
			unwrap(sel)
		})
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, node := range body.Nodes {
		collectText(&b, node)
	}
	return normalizeLines(b.String()), nil
}

// clean removes comments, removal-set elements, and hidden elements.
func (n *Normalizer) clean(doc *goquery.Document) {
	for _, node := range doc.Nodes {
		removeComments(node)
	}

	doc.Find(strings.Join(n.policy.RemoveTags, ", ")).Remove()

	doc.Find("[style], [hidden], [aria-hidden]").Each(func(_ int, sel *goquery.Selection) {
		if isHidden(sel) {
			sel.Remove()
		}
	})
}

// mainContent evaluates the candidate selectors in priority order and
// returns the first match's subtree. With no match it falls back to the
// document body with the fallback-removal selectors applied.
func (n *Normalizer) mainContent(doc *goquery.Document) (string, error) {
	for _, selector := range n.policy.MainSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			return goquery.OuterHtml(sel)
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}
	body.Find(strings.Join(n.policy.FallbackRemoveSelectors, ", ")).Remove()
	return body.Html()
}

// isHidden reports whether an element matches one of the hidden-element
// predicates: a hidden attribute, aria-hidden="true", or an inline
// display:none style (ignoring whitespace and case).
func isHidden(sel *goquery.Selection) bool {
	if _, ok := sel.Attr("hidden"); ok {
		return true
	}
	if v, ok := sel.Attr("aria-hidden"); ok && v == "true" {
		return true
	}
	if style, ok := sel.Attr("style"); ok && hasDisplayNone(style) {
		return true
	}
	return false
}

func hasDisplayNone(style string) bool {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, style)
	return strings.Contains(compact, "display:none")
}

// removeComments strips all comment nodes from the subtree rooted at node.
func removeComments(node *html.Node) {
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			node.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// unwrap splices an element's children into its parent at the same position
// and discards the wrapper.
func unwrap(sel *goquery.Selection) {
	for _, node := range sel.Nodes {
		parent := node.Parent
		if parent == nil {
			continue
		}
		for node.FirstChild != nil {
			child := node.FirstChild
			node.RemoveChild(child)
			parent.InsertBefore(child, node)
		}
		parent.RemoveChild(node)
	}
}

// collectText writes the subtree's text, bracketing each remaining element
// with newlines so block boundaries survive normalization.
func collectText(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		b.WriteString(node.Data)
		return
	case html.ElementNode:
		b.WriteString("\n")
		defer b.WriteString("\n")
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// normalizeLines collapses intra-line whitespace, drops empty lines, and
// joins the remainder with single newlines.
func normalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// normalizeSpace collapses all whitespace runs in s to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
