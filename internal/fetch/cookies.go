package fetch

import (
	"net/http"
	"strings"
	"sync"
)

// cookieJar is a minimal per-host cookie capture. Retailer anti-bot flows
// care about the raw Set-Cookie values being echoed back, not about RFC 6265
// scoping, so the jar stores one replayable Cookie header line per host.
type cookieJar struct {
	mu      sync.Mutex
	perHost map[string]string
}

func newCookieJar() *cookieJar {
	return &cookieJar{perHost: make(map[string]string)}
}

// Capture records Set-Cookie values from a response for later replay.
func (j *cookieJar) Capture(host string, header http.Header) {
	setCookies := header.Values("Set-Cookie")
	if len(setCookies) == 0 {
		return
	}
	pairs := make([]string, 0, len(setCookies))
	for _, sc := range setCookies {
		// Keep only the name=value pair; attributes like Path and Expires
		// are not meaningful when replaying.
		if i := strings.Index(sc, ";"); i >= 0 {
			sc = sc[:i]
		}
		sc = strings.TrimSpace(sc)
		if sc != "" {
			pairs = append(pairs, sc)
		}
	}
	if len(pairs) == 0 {
		return
	}
	j.mu.Lock()
	j.perHost[host] = strings.Join(pairs, "; ")
	j.mu.Unlock()
}

// CookieFor returns the replayable Cookie header for a host, or "".
func (j *cookieJar) CookieFor(host string) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.perHost[host]
}
