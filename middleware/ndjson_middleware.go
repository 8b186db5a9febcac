package middleware

import "github.com/gin-gonic/gin"

// NDJSONMiddleware prepares a response for line-delimited JSON streaming so
// proxies and clients do not buffer the refinement events.
func NDJSONMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/x-ndjson")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		c.Next()
	}
}
