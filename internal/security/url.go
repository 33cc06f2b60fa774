// Package security provides validation for untrusted input such as image URLs.
package security

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrUnsafeURL is returned for URLs that must not be fetched.
var ErrUnsafeURL = errors.New("unsafe URL")

// ValidateImageURL checks that urlStr is an absolute http(s) URL whose host is
// not local or private. Hostnames are not resolved.
func ValidateImageURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("%w: empty URL", ErrUnsafeURL)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsafeURL, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: only http and https URLs are allowed (got %q)", ErrUnsafeURL, parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("%w: URL must have a hostname", ErrUnsafeURL)
	}
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("%w: URL cannot point to local or private hosts: %s", ErrUnsafeURL, host)
	}

	return nil
}

func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}
