// Package http provides an HTTP-based implementation of
// gapscan.Resolver. It tries direct fetching, optional JS rendering,
// and reader-mode proxies in order, and returns the candidate with the
// most extracted text.
package http

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/gapscan"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 25 * time.Second

// DefaultReaderBase is the reader-mode proxy prefix. The proxy returns
// pseudo-markdown article text for the appended URL.
const DefaultReaderBase = "https://r.jina.ai/"

// DefaultTextProxyBase is the HTML-to-text proxy endpoint.
const DefaultTextProxyBase = "https://textise.org/showtext.aspx?strURL="

// Minimum cleaned-text lengths per source. Shorter results are treated
// as extraction failures rather than articles.
const (
	minDirectTextLen   = 320
	minRenderedTextLen = 320
	minReaderTextLen   = 300
	minTextProxyLen    = 260
)

// perHostRate limits requests per host to stay polite toward
// competitor sites.
const perHostRate = rate.Limit(2)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0 Safari/537.36",
}

// retryableStatus reports whether a status is worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DefaultRetryDelays returns the backoff delays between fetch attempts.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1200 * time.Millisecond, 2400 * time.Millisecond}
}

// Ensure Resolver implements gapscan.Resolver at compile time.
var _ gapscan.Resolver = (*Resolver)(nil)

// Resolver resolves URLs into analyzable documents. Safe for
// concurrent use.
type Resolver struct {
	client        *http.Client
	extractor     gapscan.Extractor
	js            gapscan.Fetcher
	delays        []time.Duration
	readerBase    string
	textProxyBase string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// WithJSFetcher enables the JS-rendered candidate using the given
// fetcher (typically rod-based). The resolver takes ownership and
// closes it on Close.
func WithJSFetcher(f gapscan.Fetcher) Option {
	return func(r *Resolver) { r.js = f }
}

// WithRetryDelays sets backoff delays between request attempts. Useful
// in tests to avoid real waits.
func WithRetryDelays(delays []time.Duration) Option {
	return func(r *Resolver) { r.delays = delays }
}

// WithReaderBase overrides the reader-mode proxy prefix.
func WithReaderBase(base string) Option {
	return func(r *Resolver) { r.readerBase = base }
}

// WithTextProxyBase overrides the text proxy endpoint. Empty disables
// the text proxy candidate.
func WithTextProxyBase(base string) Option {
	return func(r *Resolver) { r.textProxyBase = base }
}

// NewResolver creates a Resolver. The extractor pulls readable article
// text out of fetched HTML.
func NewResolver(extractor gapscan.Extractor, opts ...Option) *Resolver {
	r := &Resolver{
		extractor:     extractor,
		delays:        DefaultRetryDelays(),
		readerBase:    DefaultReaderBase,
		textProxyBase: DefaultTextProxyBase,
		limiters:      make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return r
}

type candidate struct {
	source string
	status int
	markup string
	text   string
}

var sourcePriority = map[string]int{
	"rendered":  4,
	"direct":    3,
	"reader":    2,
	"textproxy": 1,
}

// Resolve fetches a URL through the fallback chain and returns the
// richest candidate. Blocked or empty pages yield Success=false with a
// FailureReason; errors are reserved for invalid input and context
// cancellation.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*gapscan.Document, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, gapscan.Errorf(gapscan.EINVALID, "url is required")
	}

	var candidates []candidate
	markupFallback := ""
	lastStatus := 0

	add := func(source string, status int, markup, text string, minLen int) {
		text = gapscan.CleanText(text)
		if text == "" || len(text) < minLen || gapscan.LooksBlocked(text) {
			return
		}
		candidates = append(candidates, candidate{source: source, status: status, markup: markup, text: text})
	}

	// Direct HTML.
	code, body, err := r.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		lastStatus = code
	}
	if code == http.StatusOK && body != "" {
		add("direct", code, body, r.articleText(body), minDirectTextLen)
		markupFallback = body
	}

	// JS-rendered HTML.
	if r.js != nil {
		if html, err := r.js.Fetch(ctx, rawURL); err == nil && html != "" {
			add("rendered", http.StatusOK, html, r.articleText(html), minRenderedTextLen)
			if markupFallback == "" {
				markupFallback = html
			}
		} else if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	// Reader-mode proxy returns pseudo-markdown text.
	if r.readerBase != "" {
		code, body, err := r.get(ctx, r.readerBase+rawURL)
		if err != nil {
			return nil, err
		}
		if code != 0 {
			lastStatus = code
		}
		if code == http.StatusOK && body != "" {
			add("reader", code, markupFallback, body, minReaderTextLen)
		}
	}

	// Text proxy returns an HTML page whose visible text is the article.
	if r.textProxyBase != "" {
		code, body, err := r.get(ctx, r.textProxyBase+url.QueryEscape(rawURL))
		if err != nil {
			return nil, err
		}
		if code != 0 {
			lastStatus = code
		}
		if code == http.StatusOK && body != "" {
			markup := body
			if markup == "" {
				markup = markupFallback
			}
			add("textproxy", code, markup, visibleText(body), minTextProxyLen)
		}
	}

	if len(candidates) == 0 {
		return &gapscan.Document{
			Success:       false,
			StatusCode:    lastStatus,
			FailureReason: "blocked_or_no_content",
		}, nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.text) > len(best.text) ||
			(len(c.text) == len(best.text) && sourcePriority[c.source] > sourcePriority[best.source]) {
			best = c
		}
	}
	return &gapscan.Document{
		Success:       true,
		SourceLabel:   best.source,
		StatusCode:    best.status,
		RawMarkup:     best.markup,
		ExtractedText: best.text,
	}, nil
}

// Close releases the JS fetcher, when configured.
func (r *Resolver) Close() error {
	if r.js != nil {
		return r.js.Close()
	}
	return nil
}

// get performs a GET with per-host rate limiting, user-agent rotation,
// and backoff retries on transient statuses. Returns the last status
// and body; transport failures surface as status 0 unless the context
// is done.
func (r *Resolver) get(ctx context.Context, rawURL string) (int, string, error) {
	if err := r.waitHost(ctx, rawURL); err != nil {
		return 0, "", err
	}

	lastCode, lastBody := 0, ""
	attempts := len(r.delays) + 1
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return 0, "", gapscan.Errorf(gapscan.EINVALID, "invalid url %q", rawURL)
		}
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		req.Header.Set("Accept-Language", "en")

		resp, err := r.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, "", ctx.Err()
			}
			lastCode, lastBody = 0, ""
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastCode, lastBody = resp.StatusCode, ""
			} else {
				lastCode, lastBody = resp.StatusCode, string(body)
			}
			if !retryableStatus(resp.StatusCode) {
				return lastCode, lastBody, nil
			}
		}

		if i >= attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return 0, "", ctx.Err()
		case <-time.After(r.delays[i]):
		}
	}
	return lastCode, lastBody, nil
}

// waitHost blocks until the per-host rate limiter admits a request.
func (r *Resolver) waitHost(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	r.mu.Lock()
	lim, ok := r.limiters[u.Host]
	if !ok {
		lim = rate.NewLimiter(perHostRate, 2)
		r.limiters[u.Host] = lim
	}
	r.mu.Unlock()
	return lim.Wait(ctx)
}

// articleText extracts readable text from HTML, empty on failure.
func (r *Resolver) articleText(html string) string {
	if r.extractor == nil {
		return visibleText(html)
	}
	res, err := r.extractor.Extract(html)
	if err != nil {
		return ""
	}
	return res.Text
}

var (
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
)

// visibleText strips markup, leaving the page's visible text.
func visibleText(html string) string {
	return gapscan.CleanText(tagRe.ReplaceAllString(scriptRe.ReplaceAllString(html, " "), " "))
}
