package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const unlockerBackoffBase = 250 * time.Millisecond

// unlockerSession is the sticky session for the unlocker gateway. It is
// reused until its TTL lapses or a blocking signal forces rotation.
type unlockerSession struct {
	mu        sync.Mutex
	id        string
	expiresAt time.Time
}

func (s *unlockerSession) get(now time.Time, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" || !now.Before(s.expiresAt) {
		s.id = newSessionID()
		s.expiresAt = now.Add(ttl)
	}
	return s.id
}

func (s *unlockerSession) rotate(now time.Time, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = newSessionID()
	s.expiresAt = now.Add(ttl)
	return s.id
}

type unlockerPayload struct {
	URL     string `json:"url"`
	Country string `json:"country,omitempty"`
	Session string `json:"session"`
}

// fetchViaUnlocker posts the target to the unlocker gateway, retrying
// blocked or timed-out attempts with a rotated session and exponential
// backoff. Exhausted retries degrade to a direct fetch instead of
// surfacing an error; any non-timeout transport failure propagates.
func (g *Gateway) fetchViaUnlocker(ctx context.Context, u *url.URL, opts Options) (*Result, error) {
	cfg := g.cfg.Unlocker
	if !cfg.Configured() {
		return g.fetchDirect(ctx, u, opts)
	}

	country := opts.Country
	if country == "" {
		country = cfg.DefaultCountry
	}

	sessionID := g.unlocker.get(g.clock.Now(), cfg.SessionTTL())
	if opts.FreshSession {
		sessionID = newSessionID()
	}

	for attempt := 0; ; attempt++ {
		result, err := g.unlockerRequest(ctx, u, cfg.Endpoint, cfg.Token, country, sessionID, opts)
		switch {
		case err != nil && isTimeout(err):
			// Retryable, same as a blocking signal.
		case err != nil:
			return nil, err
		case !result.Blocked():
			return result, nil
		}

		if attempt >= cfg.MaxRetries {
			break
		}

		delay := unlockerBackoffBase << attempt
		g.logger.Warn("unlocker attempt blocked, rotating session",
			"host", u.Host, "attempt", attempt, "backoff", delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		sessionID = g.unlocker.rotate(g.clock.Now(), cfg.SessionTTL())
	}

	g.logger.Warn("unlocker retries exhausted, falling back to direct fetch", "host", u.Host)
	return g.fetchDirect(ctx, u, opts)
}

func (g *Gateway) unlockerRequest(ctx context.Context, u *url.URL, endpoint, token, country, sessionID string, opts Options) (*Result, error) {
	payload, err := json.Marshal(unlockerPayload{
		URL:     u.String(),
		Country: country,
		Session: sessionID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	raw, err := g.do(ctx, g.client, req, g.timeout(opts, g.cfg.Unlocker.Timeout()))
	if err != nil {
		return nil, err
	}
	result := extractUnlockerResult(raw)
	// Cookies in the unwrapped upstream response belong to the target host,
	// not to the gateway endpoint.
	g.jar.Capture(u.Host, result.Header)
	return result, nil
}

// unlockerEnvelope covers the response shapes seen across gateway vendors.
type unlockerEnvelope struct {
	Body       string `json:"body"`
	HTML       string `json:"html"`
	Content    string `json:"content"`
	StatusCode int    `json:"status_code"`
	Status     int    `json:"status"`
	Solution   struct {
		Response string `json:"response"`
		Status   int    `json:"status"`
	} `json:"solution"`
}

// extractUnlockerResult unwraps the provider envelope defensively: vendors
// disagree on field names, and some return the upstream body verbatim.
func extractUnlockerResult(raw *Result) *Result {
	var env unlockerEnvelope
	if err := json.Unmarshal(raw.Body, &env); err != nil {
		return raw
	}

	content := env.Body
	if content == "" {
		content = env.HTML
	}
	if content == "" {
		content = env.Content
	}
	if content == "" {
		content = env.Solution.Response
	}

	status := env.StatusCode
	if status == 0 {
		status = env.Status
	}
	if status == 0 {
		status = env.Solution.Status
	}

	if content == "" && status == 0 {
		return raw
	}
	out := &Result{Body: raw.Body, Status: raw.Status, Header: raw.Header}
	if content != "" {
		out.Body = []byte(content)
	}
	if status != 0 {
		out.Status = status
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
