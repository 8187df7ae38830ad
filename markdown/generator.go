// Package markdown converts normalized HTML trees into LLM-readable
// Markdown, extracting the document title and numbered citations along the
// way. The output is pragmatic Markdown, not a lossless serialization of the
// input HTML.
package markdown

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/fitmd"
	"golang.org/x/net/html"
)

// Ensure Generator implements the domain interfaces at compile time.
var (
	_ fitmd.Generator = (*Generator)(nil)
	_ fitmd.Converter = (*Generator)(nil)
)

// Generator converts content HTML into Markdown. It holds no state between
// invocations; each call builds and discards its own citation table.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces the MarkdownResult for one page. RawMarkdown always
// comes from the full content; when in.Filtered is set and retained markup
// exists, FitHTML/FitMarkdown are produced with the identical conversion
// algorithm and the same citation numbering.
func (g *Generator) Generate(in *fitmd.GenerateInput) (*fitmd.MarkdownResult, error) {
	r := newRenderer(in.BaseURL)

	raw, err := r.render(in.ContentHTML)
	if err != nil {
		return nil, err
	}

	result := &fitmd.MarkdownResult{
		RawMarkdown: raw,
		Title:       in.FallbackTitle,
	}
	if r.firstH1 != "" {
		result.Title = r.firstH1
	}

	if in.Filtered && strings.TrimSpace(in.FitHTML) != "" {
		// Fit markup is a subset of the raw content, so every URL it
		// mentions already has its first-occurrence number assigned.
		fit, err := r.render(in.FitHTML)
		if err != nil {
			return nil, err
		}
		result.FitHTML = in.FitHTML
		result.FitMarkdown = fit
		result.WordCount = fitmd.CountWords(fit)
	} else {
		result.WordCount = fitmd.CountWords(raw)
	}

	result.ReferencesMarkdown = r.cites.markdown()
	return result, nil
}

// Convert transforms HTML content into Markdown without filtering or
// citation output, satisfying fitmd.Converter for the plain conversion path.
func (g *Generator) Convert(htmlContent string) (string, error) {
	return newRenderer("").render(htmlContent)
}

// Inline (phrasing) tags: consecutive runs of these and text nodes are
// rendered as one paragraph.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"br": true, "cite": true, "code": true, "data": true, "dfn": true,
	"em": true, "font": true, "i": true, "img": true, "kbd": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true,
	"u": true, "var": true, "wbr": true,
}

type renderer struct {
	cites   *citations
	firstH1 string
}

func newRenderer(baseURL string) *renderer {
	return &renderer{cites: newCitations(baseURL)}
}

func (r *renderer) render(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fitmd.Errorf(fitmd.EINVALID, "failed to parse HTML: %v", err)
	}

	body := findBody(doc)
	if body == nil {
		return "", nil
	}

	var b strings.Builder
	r.renderBlocks(&b, body)
	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// renderBlocks renders the children of n, grouping consecutive inline
// content into implicit paragraphs.
func (r *renderer) renderBlocks(b *strings.Builder, n *html.Node) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		text := strings.TrimSpace(r.renderInlineNodes(run))
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
		run = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode, c.Type == html.ElementNode && inlineTags[c.Data]:
			run = append(run, c)
		case c.Type == html.ElementNode:
			flush()
			r.renderBlock(b, c)
		}
	}
	flush()
}

func (r *renderer) renderBlock(b *strings.Builder, n *html.Node) {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		text := strings.TrimSpace(r.renderInline(n))
		if text == "" {
			return
		}
		if n.Data == "h1" && r.firstH1 == "" {
			r.firstH1 = text
		}
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		b.WriteString(text)
		b.WriteString("\n\n")
	case "p":
		text := strings.TrimSpace(r.renderInline(n))
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	case "ul", "ol":
		r.renderList(b, n, 0)
		b.WriteString("\n")
	case "pre":
		r.renderCodeBlock(b, n)
	case "blockquote":
		var inner strings.Builder
		r.renderBlocks(&inner, n)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString("> " + line + "\n")
		}
		b.WriteString("\n")
	case "hr":
		b.WriteString("---\n\n")
	default:
		// Unknown or generic container: descend.
		r.renderBlocks(b, n)
	}
}

// renderList renders ul/ol items with 2-space indentation per nesting level.
// Ordered lists number their items; nested lists follow their parent item.
func (r *renderer) renderList(b *strings.Builder, list *html.Node, depth int) {
	ordered := list.Data == "ol"
	indent := strings.Repeat("  ", depth)
	idx := 0

	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		idx++

		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", idx)
		}

		var itemRun []*html.Node
		var nested []*html.Node
		for ic := c.FirstChild; ic != nil; ic = ic.NextSibling {
			if ic.Type == html.ElementNode && (ic.Data == "ul" || ic.Data == "ol") {
				nested = append(nested, ic)
				continue
			}
			itemRun = append(itemRun, ic)
		}

		text := strings.TrimSpace(r.renderInlineNodes(itemRun))
		b.WriteString(indent + marker + " " + text + "\n")

		for _, sub := range nested {
			r.renderList(b, sub, depth+1)
		}
	}
}

// renderCodeBlock emits a fenced code block with whitespace preserved
// verbatim and a language hint taken from a class="language-*" attribute.
func (r *renderer) renderCodeBlock(b *strings.Builder, pre *html.Node) {
	code := rawText(pre)
	lang := codeLanguage(pre)
	b.WriteString("```" + lang + "\n")
	b.WriteString(strings.TrimRight(code, "\n"))
	b.WriteString("\n```\n\n")
}

// renderInline renders the children of n as inline Markdown.
func (r *renderer) renderInline(n *html.Node) string {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return r.renderInlineNodes(nodes)
}

func (r *renderer) renderInlineNodes(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		r.renderInlineNode(&b, n)
	}
	return b.String()
}

func (r *renderer) renderInlineNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "strong", "b":
		if text := strings.TrimSpace(r.renderInline(n)); text != "" {
			b.WriteString("**" + text + "**")
		}
	case "em", "i":
		if text := strings.TrimSpace(r.renderInline(n)); text != "" {
			b.WriteString("*" + text + "*")
		}
	case "code":
		if text := strings.TrimSpace(rawText(n)); text != "" {
			b.WriteString("`" + text + "`")
		}
	case "a":
		r.renderAnchor(b, n)
	case "img":
		alt := attr(n, "alt")
		if src := r.cites.resolve(attr(n, "src")); src != "" {
			b.WriteString("![" + alt + "](" + src + ")")
		}
	case "br":
		b.WriteString("\n")
	default:
		b.WriteString(r.renderInline(n))
	}
}

// renderAnchor renders an inline link and records it as a numbered citation.
// A URL seen twice reuses its first-assigned number.
func (r *renderer) renderAnchor(b *strings.Builder, n *html.Node) {
	text := strings.TrimSpace(r.renderInline(n))
	resolved := r.cites.resolve(attr(n, "href"))
	if resolved == "" {
		b.WriteString(text)
		return
	}
	r.cites.cite(resolved)
	if text == "" {
		text = resolved
	}
	b.WriteString("[" + text + "](" + resolved + ")")
}

// citations assigns numbers to URLs in first-occurrence order, deduplicated
// by resolved URL.
type citations struct {
	base  *url.URL
	nums  map[string]int
	order []string
}

func newCitations(baseURL string) *citations {
	c := &citations{nums: make(map[string]int)}
	if baseURL != "" {
		if base, err := url.Parse(baseURL); err == nil {
			c.base = base
		}
	}
	return c
}

// resolve resolves href against the base URL. Unparseable hrefs resolve to
// the empty string.
func (c *citations) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if c.base == nil {
		return ref.String()
	}
	return c.base.ResolveReference(ref).String()
}

// cite returns the citation number for a resolved URL, assigning the next
// number on first occurrence.
func (c *citations) cite(resolved string) int {
	if num, ok := c.nums[resolved]; ok {
		return num
	}
	num := len(c.order) + 1
	c.nums[resolved] = num
	c.order = append(c.order, resolved)
	return num
}

// markdown returns the ordered citation list, one numbered entry per unique
// URL, or the empty string when no links were seen.
func (c *citations) markdown() string {
	if len(c.order) == 0 {
		return ""
	}
	var b strings.Builder
	for i, u := range c.order {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	return strings.TrimRight(b.String(), "\n")
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return body
}

// rawText concatenates all text nodes under n, preserving whitespace.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// codeLanguage returns the language hint from a class="language-*" attribute
// on the pre element or a nested code element.
func codeLanguage(pre *html.Node) string {
	if lang := languageFromClass(attr(pre, "class")); lang != "" {
		return lang
	}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			if lang := languageFromClass(attr(c, "class")); lang != "" {
				return lang
			}
		}
	}
	return ""
}

func languageFromClass(class string) string {
	for _, cls := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(cls, "language-"); ok {
			return lang
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace reduces whitespace runs to single spaces while keeping
// leading and trailing boundaries so adjacent inline nodes stay separated.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if hasLeadingSpace(s) {
		out = " " + out
	}
	if hasTrailingSpace(s) {
		out += " "
	}
	return out
}

func hasLeadingSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\n\r\f") != s
}

func hasTrailingSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\n\r\f") != s
}
