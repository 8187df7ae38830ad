package mock

import "github.com/fwojciec/fitmd"

var _ fitmd.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of fitmd.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) (*fitmd.NormalizeResult, error)
}

func (n *Normalizer) Normalize(html string) (*fitmd.NormalizeResult, error) {
	return n.NormalizeFn(html)
}
