// Package mock provides hand-written function-field mocks for the
// gapscan interfaces, used across package tests.
package mock

import (
	"context"

	"github.com/fwojciec/gapscan"
)

var _ gapscan.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of gapscan.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, url string) (*gapscan.Document, error)
	CloseFn   func() error
}

func (r *Resolver) Resolve(ctx context.Context, url string) (*gapscan.Document, error) {
	return r.ResolveFn(ctx, url)
}

func (r *Resolver) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}
