package utilities

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the originating client address from the request,
// preferring proxy-set headers over the raw connection address. The result is
// recorded on reset attempt audit rows, so a best-effort answer is fine.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client; the rest are proxies.
		if ip, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(ip)
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
