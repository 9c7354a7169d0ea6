package fetch

import (
	"context"
	"net/http"
	"net/url"
)

// fetchDirect is a plain GET, replaying any cookie previously captured for
// the target host. It is both a first-class provider and the terminal
// fallback for every other provider.
func (g *Gateway) fetchDirect(ctx context.Context, u *url.URL, opts Options) (*Result, error) {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	if cookie := g.jar.CookieFor(u.Host); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return g.do(ctx, g.client, req, g.timeout(opts, 0))
}
