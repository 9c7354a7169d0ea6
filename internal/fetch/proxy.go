package fetch

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// proxySession holds the rotating session fragment for providers that
// encode session stickiness into the proxy username.
type proxySession struct {
	mu sync.Mutex
	id string
}

func (s *proxySession) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" {
		s.id = newSessionID()
	}
	return s.id
}

func (s *proxySession) rotate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = newSessionID()
	return s.id
}

// RotateProxySession forces a new upstream identity for the forward-proxy
// provider on the next request.
func (g *Gateway) RotateProxySession() {
	id := g.proxy.rotate()
	g.logger.Info("forward proxy session rotated", "session", id)
}

// sessionUsername embeds the session fragment into a provider username.
// Providers that key sticky sessions off the username treat each distinct
// value as a separate upstream identity.
func sessionUsername(username, sessionID string) string {
	if username == "" {
		return username
	}
	if i := strings.Index(username, "-session-"); i >= 0 {
		username = username[:i]
	}
	return username + "-session-" + sessionID
}

// fetchViaProxy routes through the configured forward proxy, applying any
// per-retailer credential overrides. It first attempts a native proxy-aware
// transport; if that fails it falls back to an explicit CONNECT tunnel with
// the same credentials. Missing proxy configuration degrades to a direct
// fetch (flagged at startup by config validation).
func (g *Gateway) fetchViaProxy(ctx context.Context, u *url.URL, opts Options) (*Result, error) {
	pc := g.cfg.Proxy.ForRetailer(opts.Retailer)
	if !pc.Configured() {
		return g.fetchDirect(ctx, u, opts)
	}

	username := sessionUsername(pc.Username, g.proxy.current())
	proxyURL := &url.URL{
		Scheme: pc.Protocol,
		Host:   net.JoinHostPort(pc.Host, pc.Port),
	}
	if username != "" {
		proxyURL.User = url.UserPassword(username, pc.Password)
	}

	result, err := g.proxyRequest(ctx, u, proxyURL, opts)
	if err != nil {
		g.logger.Warn("native proxy request failed, retrying via explicit tunnel",
			"host", u.Host, "error", err)
		result, err = g.tunnelRequest(ctx, u, pc.Host, pc.Port, username, pc.Password, opts)
		if err != nil {
			return nil, err
		}
	}

	if result.Blocked() {
		// Burned identity; next request goes out under a fresh session.
		g.RotateProxySession()
	}
	return result, nil
}

func (g *Gateway) proxyRequest(ctx context.Context, u, proxyURL *url.URL, opts Options) (*Result, error) {
	client := &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if cookie := g.jar.CookieFor(u.Host); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return g.do(ctx, client, req, g.timeout(opts, 0))
}

// tunnelRequest dials the proxy itself and issues a CONNECT by hand. Some
// proxy farms reject Go's default proxied transport but accept a bare
// tunnel with the same credentials.
func (g *Gateway) tunnelRequest(ctx context.Context, u *url.URL, proxyHost, proxyPort, username, password string, opts Options) (*Result, error) {
	timeout := g.timeout(opts, 0)
	dialer := &net.Dialer{Timeout: timeout}

	targetPort := u.Port()
	if targetPort == "" {
		if u.Scheme == "https" {
			targetPort = "443"
		} else {
			targetPort = "80"
		}
	}
	targetAddr := net.JoinHostPort(u.Hostname(), targetPort)

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(proxyHost, proxyPort))
	if err != nil {
		return nil, err
	}

	connectReq := fmt.Sprintf("CONNECT %s HTTP/1.1\r\nHost: %s\r\n", targetAddr, targetAddr)
	if username != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		connectReq += "Proxy-Authorization: Basic " + creds + "\r\n"
	}
	connectReq += "\r\n"

	if _, err := conn.Write([]byte(connectReq)); err != nil {
		conn.Close()
		return nil, err
	}

	br := bufio.NewReader(conn)
	resp, err := http.ReadResponse(br, &http.Request{Method: http.MethodConnect})
	if err != nil {
		conn.Close()
		return nil, err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		conn.Close()
		return nil, fmt.Errorf("proxy CONNECT refused: %s", resp.Status)
	}

	tunneled := conn
	if u.Scheme == "https" {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: u.Hostname()})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		tunneled = tlsConn
	}

	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(context.Context, string, string) (net.Conn, error) {
				return tunneled, nil
			},
			DialTLSContext: func(context.Context, string, string) (net.Conn, error) {
				return tunneled, nil
			},
			DisableKeepAlives: true,
		},
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if cookie := g.jar.CookieFor(u.Host); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return g.do(ctx, client, req, timeout)
}
