package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "203.0.113.5, 10.0.0.1", "10.0.0.2", "10.0.0.3:4000", "203.0.113.5"},
		{"real ip", "", "203.0.113.6", "10.0.0.3:4000", "203.0.113.6"},
		{"blank forwarded entry", " , 10.0.0.1", "203.0.113.7", "10.0.0.3:4000", "203.0.113.7"},
		{"peer", "", "", "192.0.2.10:5555", "192.0.2.10"},
		{"peer without port", "", "", "192.0.2.11", "192.0.2.11"},
		{"nothing", "", "", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set(HeaderRealIP, tt.realIP)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestFormatResponseTime(t *testing.T) {
	assert.Equal(t, "12.35", FormatResponseTime(12.345678))
	assert.Equal(t, "0.00", FormatResponseTime(0))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
