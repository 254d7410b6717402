package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Requests slower than this get a second, louder log line.
const slowRequestThreshold = 300 * time.Millisecond

// PerformanceLogger times every request and flags the slow ones.
func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		log.Printf("[PERF] %s %s | Status: %d | Time: %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency)

		if latency > slowRequestThreshold {
			log.Printf("SLOW REQUEST: %s %s took %v (threshold %v)",
				c.Request.Method, c.Request.URL.Path, latency, slowRequestThreshold)
		}
	}
}
