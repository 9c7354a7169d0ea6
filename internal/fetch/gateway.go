// Package fetch is the outbound HTTP substrate for talking to hostile,
// rate-limiting retailer endpoints. It routes every request through a
// configured provider chain (direct, forward proxy, unlocker gateway,
// headless-browser API), tolerates blocking responses, and rotates upstream
// identity when a provider gets burned.
package fetch

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/config"
	"restock-sentinel/internal/pkg/errs"
)

const (
	ProviderDirect   = "direct"
	ProviderProxy    = "proxy"
	ProviderUnlocker = "unlocker"
	ProviderBrowser  = "browser"
)

const (
	defaultTimeout = 20 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var ErrInvalidURL = errs.New("invalid target url")

// Options tune a single Get. The zero value is a plain sticky-session fetch
// through the configured default provider.
type Options struct {
	// Render forces the headless-browser provider when browser credentials
	// are configured, regardless of the default provider.
	Render bool
	// Country overrides the unlocker's default geo target.
	Country string
	// Timeout overrides the provider's default per-request timeout.
	Timeout time.Duration
	// FreshSession opts out of unlocker session reuse for this call.
	FreshSession bool
	// Retailer resolves per-retailer proxy credential overrides.
	Retailer string
}

type Result struct {
	Body   []byte
	Status int
	Header http.Header
}

// Blocked reports whether the response is a blocking signal (403/429)
// rather than a genuine payload.
func (r *Result) Blocked() bool {
	return r != nil && (r.Status == http.StatusForbidden || r.Status == http.StatusTooManyRequests)
}

type Gateway struct {
	cfg    config.FetchConfig
	client *http.Client
	jar    *cookieJar
	clock  clock.Clock
	logger *slog.Logger

	unlocker *unlockerSession
	proxy    *proxySession
}

func NewGateway(cfg config.FetchConfig, clk clock.Clock, logger *slog.Logger) *Gateway {
	g := &Gateway{
		cfg:      cfg,
		client:   &http.Client{},
		jar:      newCookieJar(),
		clock:    clk,
		logger:   logger,
		unlocker: &unlockerSession{},
		proxy:    &proxySession{},
	}
	for _, warning := range cfg.Validate() {
		logger.Warn("fetch gateway configuration", "warning", warning)
	}
	return g
}

// Get fetches the target through the selected provider. Non-2xx statuses
// are returned as results, not errors; an error means no usable response
// could be produced by the provider chain.
func (g *Gateway) Get(ctx context.Context, target string, opts Options) (*Result, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return nil, errs.Mark(errs.Newf("cannot parse %q", target), ErrInvalidURL)
	}

	switch g.providerFor(opts) {
	case ProviderBrowser:
		return g.fetchViaBrowser(ctx, u, opts)
	case ProviderUnlocker:
		return g.fetchViaUnlocker(ctx, u, opts)
	case ProviderProxy:
		return g.fetchViaProxy(ctx, u, opts)
	default:
		return g.fetchDirect(ctx, u, opts)
	}
}

// Post sends a JSON body to the target with the captured session cookies
// replayed. Cart and checkout calls are authenticated by those cookies, so
// they always go out directly rather than through an anonymizing provider.
func (g *Gateway) Post(ctx context.Context, target string, body []byte, opts Options) (*Result, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return nil, errs.Mark(errs.Newf("cannot parse %q", target), ErrInvalidURL)
	}

	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	if cookie := g.jar.CookieFor(u.Host); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return g.do(ctx, g.client, req, g.timeout(opts, 0))
}

// providerFor applies the render override: a render request with configured
// browser credentials always takes the browser path.
func (g *Gateway) providerFor(opts Options) string {
	if opts.Render && g.cfg.Browser.Configured() {
		return ProviderBrowser
	}
	switch g.cfg.DefaultProvider {
	case ProviderProxy, ProviderUnlocker, ProviderBrowser:
		return g.cfg.DefaultProvider
	default:
		return ProviderDirect
	}
}

func (g *Gateway) timeout(opts Options, fallback time.Duration) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	if fallback > 0 {
		return fallback
	}
	return defaultTimeout
}

// do runs a prepared request with a bounded context and drains the body
// into a Result, capturing any Set-Cookie values for the target host.
func (g *Gateway) do(ctx context.Context, client *http.Client, req *http.Request, timeout time.Duration) (*Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := client.Do(req.WithContext(reqCtx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read response body")
	}

	g.jar.Capture(req.URL.Host, resp.Header)
	return &Result{Body: body, Status: resp.StatusCode, Header: resp.Header}, nil
}

func newSessionID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(buf[:])
}
