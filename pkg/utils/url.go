package utils

import (
	"net/url"
	"strings"
)

// ExtractDomain returns the host of a URL with any scheme and leading
// "www." stripped. Returns "" for unparseable input.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		// Handle scheme-less URLs like "example.com/path".
		host = strings.SplitN(u.Path, "/", 2)[0]
	}
	return strings.TrimPrefix(host, "www.")
}
