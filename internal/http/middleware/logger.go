package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request. Issued challans carry their DC number
// so a ledger gap can be traced back to the request that produced it.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		user := "-"
		if claims, ok := GetClaims(c); ok {
			user = claims.Username
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s user=%s dc=%s ledger_warning=%t",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
			user,
			c.Writer.Header().Get("X-DC-Number"),
			c.Writer.Header().Get("X-Ledger-Warning") != "",
		)
	}
}
