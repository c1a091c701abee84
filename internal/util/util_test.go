package util

import (
	"net/http/httptest"
	"testing"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"example.com", true},
		{"https://example.com", true},
		{"http://example.com:8080/path?q=1", true},
		{"example.com/page", true},
		{"", false},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"http://", false},
		{"not a url", false},
		{"http://[::1]:3000", true},
		{"[::1]:3000/page", true},
		{"http://127.0.0.1:8080", true},
		{"https://bücher.de", true},
		{"例え.jp", true},
		{"http://example.com:port", false},
		{"http://exa<mple>.com", false},
		{"http://[::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := IsValidURL(tt.input); result != tt.expected {
				t.Errorf("IsValidURL(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetClientIPAddress(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := GetClientIPAddress(req); got != "10.0.0.1:5555" {
		t.Errorf("GetClientIPAddress() = %s, want RemoteAddr", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := GetClientIPAddress(req); got != "203.0.113.7" {
		t.Errorf("GetClientIPAddress() = %s, want 203.0.113.7", got)
	}
}
