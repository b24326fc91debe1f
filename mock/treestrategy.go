package mock

import "github.com/fwojciec/gapscan"

var _ gapscan.TreeStrategy = (*TreeStrategy)(nil)

// TreeStrategy is a mock implementation of gapscan.TreeStrategy.
type TreeStrategy struct {
	NameFn  func() string
	BuildFn func(doc *gapscan.Document) ([]*gapscan.HeadingNode, bool)
}

func (s *TreeStrategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *TreeStrategy) Build(doc *gapscan.Document) ([]*gapscan.HeadingNode, bool) {
	return s.BuildFn(doc)
}
