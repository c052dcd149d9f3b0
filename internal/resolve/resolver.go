// Package resolve turns third-party embed URLs into direct media locators
// by scraping and decoding each provider's obfuscated page markup.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"streamgate/internal/config"
	"streamgate/internal/httputil"
	"streamgate/internal/logging"
	"streamgate/internal/media"
	"streamgate/internal/metrics"
)

// maxPageBytes bounds how much of a provider page is read. Embed pages are
// small; anything larger is not worth scanning.
const maxPageBytes = 5 * 1024 * 1024

// Resolver routes embed URLs to the matching extraction strategy and
// normalizes the result into a media.Outcome.
type Resolver struct {
	client *http.Client
	cfg    *config.Config
	cache  *outcomeCache
}

// New creates a Resolver. The resolved-URL cache is enabled only when the
// configured TTL is positive.
func New(cfg *config.Config) *Resolver {
	r := &Resolver{
		client: httputil.NewClient(cfg.ExtractTimeoutDuration()),
		cfg:    cfg,
	}
	if ttl := cfg.CacheTTLDuration(); ttl > 0 {
		r.cache = newOutcomeCache(ttl)
	}
	return r
}

// Resolve validates the embed URL, classifies its provider, and dispatches
// to the matching strategy. The returned error is non-nil only for input
// validation failures; every other failure mode is reported inside the
// outcome, which then always carries a fallback embed URL.
func (r *Resolver) Resolve(ctx context.Context, embedURL string) (media.Outcome, error) {
	embedURL = strings.TrimSpace(embedURL)
	if embedURL == "" {
		return media.Outcome{}, fmt.Errorf("URL is required")
	}
	if err := httputil.ValidateURL(embedURL); err != nil {
		return media.Outcome{}, fmt.Errorf("invalid embed URL: %w", err)
	}

	provider := media.Classify(embedURL)

	if r.cache != nil {
		if out, ok := r.cache.get(embedURL); ok {
			metrics.ExtractionsTotal.WithLabelValues(provider.String(), "cached").Inc()
			return out, nil
		}
	}

	start := time.Now()
	out := r.dispatch(ctx, provider, embedURL)
	metrics.ExtractionDuration.WithLabelValues(provider.String()).Observe(time.Since(start).Seconds())
	result := "failure"
	if out.Success {
		result = "success"
	}
	metrics.ExtractionsTotal.WithLabelValues(provider.String(), result).Inc()

	if r.cache != nil && out.Success {
		r.cache.put(embedURL, out)
	}
	return out, nil
}

// dispatch runs the provider strategy under the extraction deadline. Any
// panic is converted into a failure outcome carrying the fallback; a
// degraded answer is always preferable to none.
func (r *Resolver) dispatch(ctx context.Context, provider media.Provider, embedURL string) (out media.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("resolving %s embed: recovered: %v", provider, rec)
			out = media.Failed(provider, embedURL, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ExtractTimeoutDuration())
	defer cancel()

	switch provider {
	case media.Streamtape:
		return r.extractStreamtape(ctx, embedURL)
	case media.Doodstream:
		return r.extractDoodstream(ctx, embedURL)
	case media.Filemoon:
		return r.extractFilemoon(ctx, embedURL)
	default:
		// Unrecognized hosts are treated as already-direct.
		return media.Resolved(media.Unknown, embedURL, media.TypeAuto)
	}
}

// fetchPage fetches a provider page with browser identity headers and
// returns its body as a string.
func (r *Resolver) fetchPage(ctx context.Context, pageURL, referer string) (string, error) {
	resp, err := httputil.Get(ctx, r.client, pageURL, r.cfg.UserAgent, referer)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}
