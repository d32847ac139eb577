package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/redis"
	"github.com/halcyonweb/core/internal/pkg/response"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a per-IP rate limit of 50
// requests per second for unauthenticated traffic. Redis failures fall
// through open so a cache outage never takes the API down.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("halcyon:rate_limit:%s:%d", ip, time.Now().Unix())

		count, err := rdb.Incr(ctx, key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			response.TooManyRequests(c, "Too many requests, please slow down")
			return
		}

		c.Next()
	}
}
