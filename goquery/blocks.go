package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fitmd"
)

// Tags treated as generic containers during segmentation: when the content
// region has a single root with one of these tags, its children become the
// blocks instead of the wrapper itself.
var containerTags = map[string]bool{
	"main":    true,
	"article": true,
	"section": true,
	"div":     true,
	"body":    true,
}

// Blocks segments normalized content markup into top-level content blocks in
// document order. Whitespace-only subtrees without images are skipped.
func Blocks(contentHTML string) ([]*fitmd.ContentBlock, error) {
	if strings.TrimSpace(contentHTML) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil, fitmd.Errorf(fitmd.EINVALID, "failed to parse content HTML: %v", err)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, nil
	}

	roots := body.Children()
	if roots.Length() == 1 {
		root := roots.First()
		if tag := elementTag(root); containerTags[tag] && root.Children().Length() > 0 {
			roots = root.Children()
		}
	}

	var blocks []*fitmd.ContentBlock
	var buildErr error
	roots.Each(func(_ int, sel *goquery.Selection) {
		if buildErr != nil {
			return
		}
		block, err := newContentBlock(sel)
		if err != nil {
			buildErr = err
			return
		}
		if block != nil {
			blocks = append(blocks, block)
		}
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return blocks, nil
}

// FitHTML serializes the retained blocks, in document order.
func FitHTML(blocks []*fitmd.ContentBlock) string {
	retained := fitmd.Retained(blocks)
	parts := make([]string, 0, len(retained))
	for _, b := range retained {
		parts = append(parts, b.HTML)
	}
	return strings.Join(parts, "\n")
}

func newContentBlock(sel *goquery.Selection) (*fitmd.ContentBlock, error) {
	text := normalizeSpace(sel.Text())
	if text == "" && sel.Find("img").Length() == 0 {
		return nil, nil
	}

	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, fitmd.Errorf(fitmd.EINTERNAL, "failed to serialize block: %v", err)
	}

	linkTextLen := 0
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkTextLen += len([]rune(normalizeSpace(a.Text())))
	})

	return &fitmd.ContentBlock{
		Tag:         elementTag(sel),
		Class:       sel.AttrOr("class", ""),
		ID:          sel.AttrOr("id", ""),
		HTML:        markup,
		Text:        text,
		TextLen:     len([]rune(text)),
		LinkTextLen: linkTextLen,
		WordCount:   fitmd.CountWords(text),
	}, nil
}

func elementTag(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return strings.ToLower(sel.Nodes[0].Data)
}
