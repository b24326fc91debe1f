// Package rod provides a browser-automation implementation of
// gapscan.Fetcher for pages that only render their content with
// JavaScript.
package rod

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/gapscan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// settleDelay gives client-side rendering a moment to finish after the
// load event before the HTML snapshot is taken.
const settleDelay = 1400 * time.Millisecond

// Ensure Fetcher implements gapscan.Fetcher at compile time.
var _ gapscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	browser *rod.Browser
	closed  atomic.Bool
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Fetcher{browser: browser}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", gapscan.Errorf(gapscan.EINVALID, "fetcher is closed")
	}
	if strings.TrimSpace(url) == "" {
		return "", gapscan.Errorf(gapscan.EINVALID, "empty URL")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple
// times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	if f.browser == nil {
		return nil
	}
	return f.browser.Close()
}
