// Package clientip extracts the originating client address from a request,
// preferring proxy headers over the socket peer.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP: first X-Forwarded-For entry, then
// X-Real-IP, then the remote address.
func FromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
