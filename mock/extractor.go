package mock

import "github.com/fwojciec/gapscan"

var _ gapscan.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of gapscan.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*gapscan.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*gapscan.ExtractResult, error) {
	return e.ExtractFn(html)
}
