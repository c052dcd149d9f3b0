package resolve

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"streamgate/internal/media"
)

var (
	// Ready-made streaming-server URL embedded directly in the markup,
	// already carrying the expiring auth token.
	streamtapeReadyRe = regexp.MustCompile(`(?:https?:)?//[A-Za-z0-9.\-]+/get_video\?[^"'<>\s]*token=[^"'<>\s]+`)

	// Token value embedded separately from the robotlink base.
	streamtapeTokenRe = regexp.MustCompile(`&token=([^&"'<>\s]+)`)

	// Raw .mp4 URL literals anywhere in the body.
	streamtapeMP4Re = regexp.MustCompile(`https?://[^"'<>\s]+\.mp4[^"'<>\s]*`)
)

// Domains that serve ads rather than media; raw .mp4 hits on these are
// discarded.
var adDomains = []string{
	"doubleclick",
	"adservice",
	"adserver",
	"popads",
	"exosrv",
	"juicyads",
}

// extractStreamtape resolves a Streamtape embed URL. The /e/ embed path is
// normalized to the /v/ page path, which exposes richer markup.
func (r *Resolver) extractStreamtape(ctx context.Context, embedURL string) media.Outcome {
	pageURL := normalizeStreamtapeURL(embedURL)

	body, err := r.fetchPage(ctx, pageURL, media.Streamtape.Referer())
	if err != nil {
		return media.Failed(media.Streamtape, pageURL, err.Error())
	}

	if direct, ok := streamtapeDirectURL(body); ok {
		return media.Resolved(media.Streamtape, direct, media.TypeAuto)
	}

	return media.Failed(media.Streamtape, pageURL, "no playable URL found in embed page")
}

// streamtapeDirectURL runs the ordered heuristic chain against the page
// body; the first heuristic yielding a plausible locator wins.
func streamtapeDirectURL(body string) (string, bool) {
	// Heuristic 1: a complete get_video URL with its token already attached.
	if match := streamtapeReadyRe.FindString(body); match != "" {
		return withScheme(match), true
	}

	// Heuristic 2: robotlink base element plus a separately embedded token.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		base := strings.TrimSpace(doc.Find("#robotlink").Text())
		tokens := streamtapeTokenRe.FindAllStringSubmatch(body, -1)
		if base != "" && len(tokens) > 0 {
			// The last token on the page is the live one.
			token := tokens[len(tokens)-1][1]
			return withScheme(base) + "&token=" + token + "&stream=1", true
		}
	}

	// Heuristic 3: any raw .mp4 literal, excluding advertisement domains.
	for _, match := range streamtapeMP4Re.FindAllString(body, -1) {
		if !isAdURL(match) {
			return match, true
		}
	}

	return "", false
}

func isAdURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, domain := range adDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// withScheme upgrades protocol-relative links to https.
func withScheme(link string) string {
	if strings.HasPrefix(link, "//") {
		return "https:" + link
	}
	return link
}

// normalizeStreamtapeURL rewrites the /e/ embed path to the equivalent /v/
// page path. Extraction quality differs between the two forms; the page
// form yields richer markup.
func normalizeStreamtapeURL(embedURL string) string {
	u, err := url.Parse(embedURL)
	if err != nil {
		return embedURL
	}
	if strings.HasPrefix(u.Path, "/e/") {
		u.Path = "/v/" + strings.TrimPrefix(u.Path, "/e/")
		return u.String()
	}
	return embedURL
}
