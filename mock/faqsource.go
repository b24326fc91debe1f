package mock

import "github.com/fwojciec/gapscan"

var _ gapscan.FAQSource = (*FAQSource)(nil)

// FAQSource is a mock implementation of gapscan.FAQSource.
type FAQSource struct {
	HasSchemaFn func(markup string) bool
	QuestionsFn func(markup string) []string
	PairsFn     func(markup string) []gapscan.FAQPair
}

func (f *FAQSource) HasSchema(markup string) bool {
	return f.HasSchemaFn(markup)
}

func (f *FAQSource) Questions(markup string) []string {
	return f.QuestionsFn(markup)
}

func (f *FAQSource) Pairs(markup string) []gapscan.FAQPair {
	return f.PairsFn(markup)
}
