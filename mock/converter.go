package mock

import "github.com/fwojciec/gapscan"

var _ gapscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of gapscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
