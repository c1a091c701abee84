package util

import (
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// GetClientIPAddress prefers the first X-Forwarded-For hop over RemoteAddr.
func GetClientIPAddress(r *http.Request) string {
	if forwardedIP := r.Header.Get("X-Forwarded-For"); forwardedIP != "" {
		first, _, _ := strings.Cut(forwardedIP, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}

// hostPattern accepts DNS names, including internationalized labels.
var hostPattern = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)

// IsValidURL accepts http(s) URLs and bare hosts such as "example.com".
// Hosts may be DNS names, IDN names or IP literals ("http://[::1]:3000").
func IsValidURL(input string) bool {
	if input == "" || strings.ContainsFunc(input, unicode.IsSpace) {
		return false
	}

	toParse := input
	if !strings.Contains(input, "://") {
		toParse = "http://" + input
	}

	u, err := url.Parse(toParse)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	return hostPattern.MatchString(host)
}
