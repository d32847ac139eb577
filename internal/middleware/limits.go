package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// MaxBodyBytes caps request bodies at 10 MB, large enough for a post
	// with an inline base64 image.
	MaxBodyBytes = 10 << 20

	writeTimeout = 120 * time.Second
	readTimeout  = 30 * time.Second
)

// BodyLimit caps the size of request bodies. Oversized bodies surface as a
// read error during JSON binding rather than exhausting memory.
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		c.Next()
	}
}

// RequestTimeout attaches a per-request deadline to the context: generous
// for mutating requests that may touch SMTP, tighter for reads.
func RequestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		timeout := readTimeout
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			timeout = writeTimeout
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
