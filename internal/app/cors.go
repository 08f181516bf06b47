package app

import (
	"net/url"
	"strings"
)

// extractOriginHost reduces a browser Origin header to "host[:port]" so it
// can be matched against the configured allowed_origins patterns.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches an allowed_origins entry.
// Entries are either an exact host or a "*.domain" subdomain wildcard, which
// covers the supervisor dashboard deployments.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return false
}
