package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// FromRequest returns the address of the caller. The leftmost valid entry of
// X-Forwarded-For wins, then X-Real-IP, then the connection's remote address.
// It returns "" when none of them holds a valid IP.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for hop := range strings.SplitSeq(forwarded, ",") {
			if ip := normalize(hop); ip != "" {
				return ip
			}
		}
	}
	if ip := normalize(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// normalize unmaps IPv4-in-IPv6 and drops zones so that one caller always
// produces one string.
func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
