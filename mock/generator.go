package mock

import "github.com/fwojciec/fitmd"

var _ fitmd.Generator = (*Generator)(nil)

// Generator is a mock implementation of fitmd.Generator.
type Generator struct {
	GenerateFn func(in *fitmd.GenerateInput) (*fitmd.MarkdownResult, error)
}

func (g *Generator) Generate(in *fitmd.GenerateInput) (*fitmd.MarkdownResult, error) {
	return g.GenerateFn(in)
}
