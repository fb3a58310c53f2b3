package utils

import (
	"net"
	"net/url"
	"strings"
)

// IsAllowedOrigin checks whether an Origin header value should be trusted.
// Localhost, private/link-local IPs, .local hostnames and single-label LAN
// names are allowed; public internet origins are blocked.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	return IsPrivateHost(parsed.Hostname())
}

// IsPrivateHost reports whether a hostname names a local or private-network
// endpoint: localhost, *.local mDNS names, single-label LAN names, or an IP
// in the loopback, RFC1918 or link-local ranges. The plex candidate resolver
// uses this to decide when an HTTP fallback for an HTTPS URL makes sense.
func IsPrivateHost(hostname string) bool {
	if hostname == "" {
		return false
	}
	if hostname == "localhost" || strings.HasSuffix(hostname, ".local") {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
	}
	// Single-label hostnames (no dots) are LAN names.
	return !strings.Contains(hostname, ".")
}
