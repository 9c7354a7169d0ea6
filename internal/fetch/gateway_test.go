//go:build unit

package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-sentinel/internal/pkg/clock"
	"restock-sentinel/internal/pkg/config"
	"restock-sentinel/internal/pkg/logger"
)

func newTestGateway(t *testing.T, cfg config.FetchConfig) *Gateway {
	t.Helper()
	return NewGateway(cfg, clock.NewMockClock(time.Now()), logger.NewDiscard())
}

func TestGateway_Get_Direct_ReplaysCapturedCookies(t *testing.T) {
	var gotCookie string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotCookie = r.Header.Get("Cookie")
		w.Header().Add("Set-Cookie", "session=abc123; Path=/; HttpOnly")
		w.Header().Add("Set-Cookie", "region=us; Path=/")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	g := newTestGateway(t, config.FetchConfig{DefaultProvider: "direct"})

	res, err := g.Get(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, gotCookie)

	_, err = g.Get(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "session=abc123; region=us", gotCookie)
}

func TestGateway_Get_Unlocker_RetriesWithRotatedSessionThenFallsBackToDirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("direct body"))
	}))
	defer target.Close()

	var sessions []string
	unlocker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			URL     string `json:"url"`
			Session string `json:"session"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, target.URL, payload.URL)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		sessions = append(sessions, payload.Session)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status_code":429,"body":"blocked"}`))
	}))
	defer unlocker.Close()

	g := newTestGateway(t, config.FetchConfig{
		DefaultProvider: "unlocker",
		Unlocker: config.UnlockerConfig{
			Endpoint:     unlocker.URL,
			Token:        "token",
			MaxRetries:   1,
			SessionTTLMS: 120000,
			TimeoutMS:    5000,
		},
	})

	res, err := g.Get(context.Background(), target.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "direct body", string(res.Body))

	require.Len(t, sessions, 2)
	assert.NotEqual(t, sessions[0], sessions[1], "retry must use a rotated session")
}

func TestGateway_Get_Unlocker_TimeoutsExhaustedFallBackToDirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("direct body"))
	}))
	defer target.Close()

	unlocker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer unlocker.Close()

	g := newTestGateway(t, config.FetchConfig{
		DefaultProvider: "unlocker",
		Unlocker: config.UnlockerConfig{
			Endpoint:     unlocker.URL,
			Token:        "token",
			MaxRetries:   0,
			SessionTTLMS: 120000,
			TimeoutMS:    20,
		},
	})

	res, err := g.Get(context.Background(), target.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "direct body", string(res.Body))
}

func TestGateway_Get_Unlocker_UnwrapsEnvelope(t *testing.T) {
	unlocker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"body":"<html>stock page</html>","status_code":200}`))
	}))
	defer unlocker.Close()

	g := newTestGateway(t, config.FetchConfig{
		DefaultProvider: "unlocker",
		Unlocker: config.UnlockerConfig{
			Endpoint:     unlocker.URL,
			Token:        "token",
			MaxRetries:   2,
			SessionTTLMS: 120000,
			TimeoutMS:    5000,
		},
	})

	res, err := g.Get(context.Background(), "https://retailer.example/item/1", Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "<html>stock page</html>", string(res.Body))
}

func TestGateway_Get_Unlocker_MisconfiguredFallsBackToDirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("plain"))
	}))
	defer target.Close()

	g := newTestGateway(t, config.FetchConfig{DefaultProvider: "unlocker"})

	res, err := g.Get(context.Background(), target.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "plain", string(res.Body))
}

func TestGateway_Get_InvalidURL(t *testing.T) {
	g := newTestGateway(t, config.FetchConfig{DefaultProvider: "direct"})
	_, err := g.Get(context.Background(), "not a url", Options{})
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestGateway_providerFor(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.FetchConfig
		opts     Options
		expected string
	}{
		{
			name:     "default direct",
			cfg:      config.FetchConfig{DefaultProvider: "direct"},
			expected: ProviderDirect,
		},
		{
			name:     "unknown provider treated as direct",
			cfg:      config.FetchConfig{DefaultProvider: "carrier-pigeon"},
			expected: ProviderDirect,
		},
		{
			name:     "configured default respected",
			cfg:      config.FetchConfig{DefaultProvider: "proxy"},
			expected: ProviderProxy,
		},
		{
			name: "render override takes browser when configured",
			cfg: config.FetchConfig{
				DefaultProvider: "proxy",
				Browser:         config.BrowserConfig{Endpoint: "https://browser.example", Token: "t"},
			},
			opts:     Options{Render: true},
			expected: ProviderBrowser,
		},
		{
			name:     "render override ignored without browser credentials",
			cfg:      config.FetchConfig{DefaultProvider: "proxy"},
			opts:     Options{Render: true},
			expected: ProviderProxy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t, tt.cfg)
			assert.Equal(t, tt.expected, g.providerFor(tt.opts))
		})
	}
}

func TestResult_Blocked(t *testing.T) {
	assert.True(t, (&Result{Status: http.StatusForbidden}).Blocked())
	assert.True(t, (&Result{Status: http.StatusTooManyRequests}).Blocked())
	assert.False(t, (&Result{Status: http.StatusOK}).Blocked())
	assert.False(t, (&Result{Status: http.StatusNotFound}).Blocked())
	var nilResult *Result
	assert.False(t, nilResult.Blocked())
}

func TestExtractUnlockerResult(t *testing.T) {
	header := http.Header{}

	tests := []struct {
		name       string
		raw        string
		rawStatus  int
		wantBody   string
		wantStatus int
	}{
		{
			name:       "body and status_code fields",
			raw:        `{"body":"content","status_code":200}`,
			rawStatus:  200,
			wantBody:   "content",
			wantStatus: 200,
		},
		{
			name:       "html field with status",
			raw:        `{"html":"<p>x</p>","status":429}`,
			rawStatus:  200,
			wantBody:   "<p>x</p>",
			wantStatus: 429,
		},
		{
			name:       "solution envelope",
			raw:        `{"solution":{"response":"rendered","status":200}}`,
			rawStatus:  200,
			wantBody:   "rendered",
			wantStatus: 200,
		},
		{
			name:       "non-json body passes through",
			raw:        `<html>verbatim</html>`,
			rawStatus:  200,
			wantBody:   `<html>verbatim</html>`,
			wantStatus: 200,
		},
		{
			name:       "status only keeps raw body",
			raw:        `{"status_code":403}`,
			rawStatus:  200,
			wantBody:   `{"status_code":403}`,
			wantStatus: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := extractUnlockerResult(&Result{Body: []byte(tt.raw), Status: tt.rawStatus, Header: header})
			assert.Equal(t, tt.wantBody, string(out.Body))
			assert.Equal(t, tt.wantStatus, out.Status)
		})
	}
}

func TestSessionUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		session  string
		expected string
	}{
		{name: "empty username untouched", username: "", session: "abc", expected: ""},
		{name: "plain username gets fragment", username: "cust-1", session: "abc", expected: "cust-1-session-abc"},
		{name: "existing fragment replaced", username: "cust-1-session-old", session: "new", expected: "cust-1-session-new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sessionUsername(tt.username, tt.session))
		})
	}
}

func TestApplyBrowserAuth(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		check    func(t *testing.T, req *http.Request)
	}{
		{
			name:     "browserless uses token query param",
			endpoint: "https://chrome.browserless.example/content",
			check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "tok", req.URL.Query().Get("token"))
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:     "scraping api uses x-api-key",
			endpoint: "https://api.scrapingfarm.example/v1",
			check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "tok", req.Header.Get("X-API-Key"))
			},
		},
		{
			name:     "default uses bearer",
			endpoint: "https://render.example/api",
			check: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, tt.endpoint, nil)
			require.NoError(t, err)
			applyBrowserAuth(req, req.URL.Hostname(), "tok")
			tt.check(t, req)
		})
	}
}

func TestGateway_Get_Browser_SendsRenderPayload(t *testing.T) {
	var payload browserPayload
	browser := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Bearer browser-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("rendered html"))
	}))
	defer browser.Close()

	g := newTestGateway(t, config.FetchConfig{
		DefaultProvider: "direct",
		Browser:         config.BrowserConfig{Endpoint: browser.URL, Token: "browser-token"},
	})

	res, err := g.Get(context.Background(), "https://retailer.example/item/2", Options{Render: true})
	require.NoError(t, err)
	assert.Equal(t, "rendered html", string(res.Body))
	assert.Equal(t, "https://retailer.example/item/2", payload.URL)
	assert.True(t, payload.Render)
}
