package http

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/careerone/portfolio/pkg/logger"
)

func TestActivityHandlerBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		publicURL string
		host      string
		proto     string
		tls       bool
		want      string
	}{
		{name: "configured url wins", publicURL: "https://cv.example.com/", host: "evil.example", proto: "http", want: "https://cv.example.com"},
		{name: "request host", host: "localhost:8080", want: "http://localhost:8080"},
		{name: "tls request", host: "cv.local", tls: true, want: "https://cv.local"},
		{name: "forwarded https", host: "cv.local", proto: "HTTPS", want: "https://cv.local"},
		{name: "forwarded garbage ignored", host: "cv.local", proto: "javascript", want: "http://cv.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewActivityHandler(nil, tt.publicURL, logger.NewNopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/activities/feed.xml", nil)
			req.Host = tt.host
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = req

			assert.Equal(t, tt.want, h.baseURL(c))
		})
	}
}
