package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		expected      string
	}{
		{
			name:          "x-forwarded-for single IP",
			xForwardedFor: "192.168.1.1",
			expected:      "192.168.1.1",
		},
		{
			name:          "x-forwarded-for takes the first hop",
			xForwardedFor: "203.0.113.1, 198.51.100.1",
			expected:      "203.0.113.1",
		},
		{
			name:     "x-real-ip when no x-forwarded-for",
			xRealIP:  "192.168.1.100",
			expected: "192.168.1.100",
		},
		{
			name:          "x-forwarded-for beats x-real-ip",
			xForwardedFor: "203.0.113.1",
			xRealIP:       "192.168.1.100",
			expected:      "203.0.113.1",
		},
		{
			name:       "remote addr strips the port",
			remoteAddr: "192.168.1.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "remote addr IPv6",
			remoteAddr: "[2001:db8::1]:54321",
			expected:   "[2001:db8::1]",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1",
			expected:   "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.xForwardedFor != "" {
				r.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				r.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if tt.remoteAddr != "" {
				r.RemoteAddr = tt.remoteAddr
			}

			require.Equal(t, tt.expected, ExtractClientIP(r))
		})
	}
}

func TestClientIPMiddleware(t *testing.T) {
	var capturedIP string
	handler := ClientIPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedIP = ClientIPFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.1")

	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "203.0.113.1", capturedIP)
}

func TestClientIPFromContext_missing(t *testing.T) {
	require.Empty(t, ClientIPFromContext(context.Background()))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/products", nil)

	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, buf.String(), `"path":"/products"`)
	require.Contains(t, buf.String(), `"status":201`)
}

func TestRequestLogger_usesClientIPFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := ClientIPMiddleware()(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")

	handler.ServeHTTP(w, r)

	require.Contains(t, buf.String(), `"client_ip":"203.0.113.9"`)
}

func TestRecover(t *testing.T) {
	handler := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NotPanics(t, func() {
		handler.ServeHTTP(w, r)
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal server error")
}
