// Package httputil provides a hardened HTTP client and URL validation
// utilities shared by the resolver and the relay.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

// NewClient creates a hardened HTTP client with secure defaults. A zero
// timeout disables the overall deadline; callers then bound requests via
// context or transport settings.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(0),
	}
}

// NewTransport returns the shared transport configuration. When
// headerTimeout is non-zero it bounds the wait for upstream response
// headers without limiting how long a streamed body may take.
func NewTransport(headerTimeout time.Duration) *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		MaxIdleConnsPerHost:   5,
		ResponseHeaderTimeout: headerTimeout,
	}
}

// Get performs a GET request with browser-like identity headers. The referer
// is omitted when empty.
func Get(ctx context.Context, client *http.Client, url, userAgent, referer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	return client.Do(req)
}
