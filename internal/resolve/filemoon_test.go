package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const filemoonHLSPage = `<html><body><script>
eval(function(p,a,c,k,e,d){}("sources:[{file:\"placeholder\"}]"));
var player = jwplayer("vplayer").setup({
    sources: [{file:"https://be4242.filemoon.example/hls2/01/master.m3u8?t=abc&s=1700"}],
});
</script></body></html>`

const filemoonMP4Page = `<html><body><script>
var player = jwplayer("vplayer").setup({
    sources: [{file:"https://be4242.filemoon.example/download/movie.mp4?t=abc"}],
});
</script></body></html>`

const filemoonBothPage = `<html><body><script>
var player = jwplayer("vplayer").setup({
    sources: [
        {file:"https://be4242.filemoon.example/download/movie.mp4"},
        {file:"https://be4242.filemoon.example/hls2/01/master.m3u8"},
    ],
});
</script></body></html>`

func TestFilemoonFileURL(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantURL   string
		wantType  string
		wantFound bool
	}{
		{
			name:      "hls manifest",
			body:      filemoonHLSPage,
			wantURL:   "https://be4242.filemoon.example/hls2/01/master.m3u8?t=abc&s=1700",
			wantType:  "hls",
			wantFound: true,
		},
		{
			name:      "mp4 fallback",
			body:      filemoonMP4Page,
			wantURL:   "https://be4242.filemoon.example/download/movie.mp4?t=abc",
			wantType:  "mp4",
			wantFound: true,
		},
		{
			name:      "hls preferred over mp4",
			body:      filemoonBothPage,
			wantURL:   "https://be4242.filemoon.example/hls2/01/master.m3u8",
			wantType:  "hls",
			wantFound: true,
		},
		{
			name:      "no file entry",
			body:      "<html><body>nope</body></html>",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, mediaType, ok := filemoonFileURL(tt.body)
			if ok != tt.wantFound {
				t.Fatalf("found = %v, want %v", ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
			if mediaType != tt.wantType {
				t.Errorf("mediaType = %q, want %q", mediaType, tt.wantType)
			}
		})
	}
}

func TestExtractFilemoon(t *testing.T) {
	var gotReferer string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte(filemoonHLSPage))
	}))
	defer ts.Close()

	r := newTestResolver(0)
	out := r.extractFilemoon(context.Background(), ts.URL+"/e/abcdef")

	if !out.Success {
		t.Fatalf("extraction failed: %s", out.Message)
	}
	if gotReferer != "https://filemoon.sx/" {
		t.Errorf("Referer = %q, want provider domain", gotReferer)
	}
	if out.Provider != "filemoon" {
		t.Errorf("Provider = %q", out.Provider)
	}
	if out.MediaType != "hls" {
		t.Errorf("MediaType = %q, want hls", out.MediaType)
	}
}

func TestExtractFilemoonFailureKeepsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>gone</body></html>"))
	}))
	defer ts.Close()

	r := newTestResolver(0)
	out := r.extractFilemoon(context.Background(), ts.URL+"/e/abcdef")

	if out.Success {
		t.Fatal("expected failure outcome")
	}
	if out.FallbackEmbed != ts.URL+"/e/abcdef" {
		t.Errorf("FallbackEmbed = %q, want original embed URL", out.FallbackEmbed)
	}
}
