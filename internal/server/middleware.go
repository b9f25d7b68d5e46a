package server

import (
	"net/http"
	"time"

	"lostfound-registry/services/httpx"
	"lostfound-registry/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	status := c.Writer.Status()
	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  status,
		"latency": time.Since(start).String(),
		"user_id": httpx.Actor(c).UserID,
	}
	switch {
	case status >= http.StatusInternalServerError:
		utils.Error("HTTP Request", fields)
	case status >= http.StatusBadRequest:
		utils.Warn("HTTP Request", fields)
	default:
		utils.Info("HTTP Request", fields)
	}
}

// IdentityMiddleware stores the caller identity supplied by the upstream
// identity provider. Anonymous requests pass; mutating handlers reject them.
func IdentityMiddleware(c *gin.Context) {
	httpx.SetActor(c, httpx.ActorFromHeaders(c.Request))
	c.Next()
}
