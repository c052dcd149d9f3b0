package httputil

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://streamtape.com/e/abc", false},
		{"valid http", "http://localhost:8080/proxy", false},
		{"with query", "https://dood.la/e/abc?token=x", false},
		{"empty", "", true},
		{"relative path", "/e/abc", true},
		{"no host", "https://", true},
		{"bad scheme", "ftp://example.com/file.mp4", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"spaces", "https://example.com/a b\x7f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
