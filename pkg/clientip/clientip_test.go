package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for first entry", forwarded: "203.0.113.7, 10.0.0.1", remoteAddr: "10.0.0.2:4321", want: "203.0.113.7"},
		{name: "x-forwarded-for single", forwarded: "198.51.100.4", remoteAddr: "10.0.0.2:4321", want: "198.51.100.4"},
		{name: "x-real-ip fallback", realIP: "198.51.100.9", remoteAddr: "10.0.0.2:4321", want: "198.51.100.9"},
		{name: "remote addr fallback", remoteAddr: "192.0.2.10:56789", want: "192.0.2.10"},
		{name: "forwarded wins over real-ip", forwarded: "203.0.113.1", realIP: "198.51.100.9", remoteAddr: "10.0.0.2:4321", want: "203.0.113.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/country/list", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, FromRequest(r))
		})
	}
}
