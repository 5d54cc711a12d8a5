package security

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPDirectPeer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:4321"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Fatalf("expected peer address, got %q", got)
	}
}

func TestClientIPIgnoresSpoofedHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:4321"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Fatalf("untrusted peer must not spoof via header, got %q", got)
	}
}

func TestClientIPTrustedProxy(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.5")
	if got := ClientIP(r); got != "198.51.100.9" {
		t.Fatalf("expected forwarded client address, got %q", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "127.0.0.1:4321"
	r.Header.Set("X-Real-IP", "198.51.100.10")
	if got := ClientIP(r); got != "198.51.100.10" {
		t.Fatalf("expected X-Real-IP address, got %q", got)
	}
}
