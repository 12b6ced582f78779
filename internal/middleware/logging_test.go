package middleware

import (
	"testing"

	"github.com/BumsooCho/trendix-ai-server/pkg/hash"
)

func TestHashIPForLog_SaltedAndIterated(t *testing.T) {
	InitLogger("info", "test", "salt-a")

	got := hashIPForLog("192.168.1.1")
	if len(got) != 12 {
		t.Errorf("hash prefix length = %d, want 12", len(got))
	}

	// Must be the salted iterated digest, not a plain SHA256 of the address.
	if got == hash.SHA256Hex("192.168.1.1")[:12] {
		t.Error("logged IP hash must not be an unsalted single SHA256")
	}
	if got != hash.HashIP("192.168.1.1", "salt-a")[:12] {
		t.Error("logged IP hash must use the configured salt")
	}

	// A different deployment salt yields different log hashes for the same IP.
	InitLogger("info", "test", "salt-b")
	if hashIPForLog("192.168.1.1") == got {
		t.Error("changing the salt must change the logged hash")
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"channel id masked", "/api/channels/UCabc123", "/api/channels/:channelId"},
		{"category masked", "/api/trends/categories/gaming/recommendations", "/api/trends/categories/:category/recommendations"},
		{"hot not masked", "/api/trends/categories/hot", "/api/trends/categories/hot"},
		{"static path untouched", "/api/trends/videos/surge", "/api/trends/videos/surge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.path); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
