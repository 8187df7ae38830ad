package mock

import "github.com/fwojciec/fitmd"

var _ fitmd.Converter = (*Converter)(nil)

// Converter is a mock implementation of fitmd.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ fitmd.PageConverter = (*PageConverter)(nil)

// PageConverter is a mock implementation of fitmd.PageConverter.
type PageConverter struct {
	ConvertFn func(rawHTML, baseURL string, opts fitmd.FilterOptions) (*fitmd.MarkdownResult, error)
}

func (c *PageConverter) Convert(rawHTML, baseURL string, opts fitmd.FilterOptions) (*fitmd.MarkdownResult, error) {
	return c.ConvertFn(rawHTML, baseURL, opts)
}
