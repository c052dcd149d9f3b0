// Package relay streams media bytes from a resolved origin URL to the
// client while preserving HTTP range semantics across both legs.
package relay

import (
	"io"
	"net/http"
	"strconv"

	"streamgate/internal/config"
	"streamgate/internal/httputil"
	"streamgate/internal/logging"
	"streamgate/internal/media"
	"streamgate/internal/metrics"
)

// copyBufSize bounds the relay's per-request buffer so a slow client holds
// one buffer, not the whole file.
const copyBufSize = 64 * 1024

// Headers mirrored from the origin response exactly when present; absence
// is preserved as absence, not defaulted.
var mirroredHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
}

// Relay performs server-side fetches of direct media URLs and pipes the
// bytes through to the client.
type Relay struct {
	client *http.Client
	cfg    *config.Config
}

// New creates a Relay. The upstream client has no overall deadline: media
// transfers are long-lived, so only the wait for response headers is
// bounded.
func New(cfg *config.Config) *Relay {
	return &Relay{
		client: &http.Client{
			Transport: httputil.NewTransport(cfg.ProxyTimeoutDuration()),
		},
		cfg: cfg,
	}
}

// Proxy fetches targetURL and pipes the origin response to w. The inbound
// Range header is forwarded verbatim, the upstream status code is mirrored
// (a 206 stays a 206), and the body is streamed without buffering it fully.
// Upstream failures are terminal for this request; retry and fallback are
// the caller's responsibility.
func (re *Relay) Proxy(w http.ResponseWriter, r *http.Request, targetURL string) {
	if err := httputil.ValidateURL(targetURL); err != nil {
		http.Error(w, "invalid url parameter", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, targetURL, nil)
	if err != nil {
		http.Error(w, "invalid url parameter", http.StatusBadRequest)
		return
	}

	req.Header.Set("User-Agent", re.cfg.UserAgent)
	req.Header.Set("Referer", re.refererFor(targetURL))
	if rng := r.Header.Get("Range"); rng != "" {
		req.Header.Set("Range", rng)
	}

	resp, err := re.client.Do(req)
	if err != nil {
		logging.Warn("relay: fetching %s: %v", targetURL, err)
		metrics.RelayRequestsTotal.WithLabelValues("error").Inc()
		http.Error(w, "failed to fetch upstream media", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for _, name := range mirroredHeaders {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	metrics.RelayRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	buf := make([]byte, copyBufSize)
	n, err := io.CopyBuffer(w, resp.Body, buf)
	metrics.RelayBytesTotal.Add(float64(n))
	if err != nil {
		// Client gone or upstream cut off mid-stream; nothing to send back.
		logging.Debug("relay: copy ended after %d bytes: %v", n, err)
	}
}

// refererFor picks a provider-appropriate referer for the media fetch,
// defaulting to the most common provider's domain to satisfy hotlink
// protection on unrecognized hosts.
func (re *Relay) refererFor(targetURL string) string {
	if referer := media.Classify(targetURL).Referer(); referer != "" {
		return referer
	}
	return re.cfg.DefaultReferer
}
