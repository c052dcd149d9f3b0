package resolve

import (
	"context"
	"regexp"

	"streamgate/internal/media"
)

var (
	filemoonHLSRe = regexp.MustCompile(`file\s*:\s*"([^"]+\.m3u8[^"]*)"`)
	filemoonMP4Re = regexp.MustCompile(`file\s*:\s*"([^"]+\.mp4[^"]*)"`)
)

// extractFilemoon resolves a Filemoon embed URL by searching the embedded
// player configuration for a file: entry. HLS manifests are preferred over
// progressive mp4 files.
func (r *Resolver) extractFilemoon(ctx context.Context, embedURL string) media.Outcome {
	body, err := r.fetchPage(ctx, embedURL, media.Filemoon.Referer())
	if err != nil {
		return media.Failed(media.Filemoon, embedURL, err.Error())
	}

	if direct, mediaType, ok := filemoonFileURL(body); ok {
		return media.Resolved(media.Filemoon, direct, mediaType)
	}

	return media.Failed(media.Filemoon, embedURL, "no file entry found in player configuration")
}

func filemoonFileURL(body string) (direct, mediaType string, ok bool) {
	if match := filemoonHLSRe.FindStringSubmatch(body); match != nil {
		return match[1], media.TypeHLS, true
	}
	if match := filemoonMP4Re.FindStringSubmatch(body); match != nil {
		return match[1], media.TypeMP4, true
	}
	return "", "", false
}
