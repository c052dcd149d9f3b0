// Package media defines shared types for the streamgate service.
package media

import "strings"

// Provider identifies the hosting site an embed URL belongs to.
type Provider int

const (
	Unknown Provider = iota
	Streamtape
	Doodstream
	Filemoon
)

func (p Provider) String() string {
	switch p {
	case Streamtape:
		return "streamtape"
	case Doodstream:
		return "doodstream"
	case Filemoon:
		return "filemoon"
	default:
		return "unknown"
	}
}

// Referer returns the provider's own domain, used to satisfy hotlink
// protection on embed-page and media fetches.
func (p Provider) Referer() string {
	switch p {
	case Streamtape:
		return "https://streamtape.com/"
	case Doodstream:
		return "https://doodstream.com/"
	case Filemoon:
		return "https://filemoon.sx/"
	default:
		return ""
	}
}

// Classify derives the provider from an embed URL by substring matching.
// Pure function: no I/O, unmatched input yields Unknown. The check order is
// fixed; the first matching provider wins.
func Classify(rawURL string) Provider {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, "streamtape"):
		return Streamtape
	case strings.Contains(lower, "doodstream"), strings.Contains(lower, "dood"):
		return Doodstream
	case strings.Contains(lower, "filemoon"):
		return Filemoon
	default:
		return Unknown
	}
}

// Media type tags for resolved locators.
const (
	TypeAuto = "auto"
	TypeHLS  = "hls"
	TypeMP4  = "mp4"
)

// Outcome is the result of a single embed resolution. On failure,
// FallbackEmbed always carries the original (or normalized) embed URL so the
// caller can degrade to the provider's own player.
type Outcome struct {
	Success       bool   `json:"success"`
	DirectURL     string `json:"directUrl,omitempty"`
	Provider      string `json:"provider,omitempty"`
	MediaType     string `json:"mediaType,omitempty"`
	Quality       string `json:"quality,omitempty"`
	Message       string `json:"message,omitempty"`
	FallbackEmbed string `json:"fallbackEmbed,omitempty"`
}

// Resolved builds a success outcome for a direct media URL.
func Resolved(p Provider, directURL, mediaType string) Outcome {
	return Outcome{
		Success:   true,
		DirectURL: directURL,
		Provider:  p.String(),
		MediaType: mediaType,
		Quality:   "auto",
	}
}

// Failed builds a failure outcome. fallbackEmbed must be non-empty; callers
// pass the embed URL they attempted to resolve.
func Failed(p Provider, fallbackEmbed, message string) Outcome {
	return Outcome{
		Success:       false,
		Provider:      p.String(),
		Message:       message,
		FallbackEmbed: fallbackEmbed,
	}
}
