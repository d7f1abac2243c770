package server

import (
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-showcase/internal/session"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	workspaceKey    = "workspace"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = rand.Text()
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, if any.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// Logger writes one line per request.
func Logger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}

// workspace attaches the caller's session workspace, issuing a cookie when a
// new one is created.
func (s *Server) workspace() gin.HandlerFunc {
	name := s.cfg.Session.CookieName
	maxAge := int(s.cfg.Session.TTL / time.Second)
	return func(c *gin.Context) {
		id, _ := c.Cookie(name)
		ws, created := s.sessions.Acquire(id)
		if created || id != ws.ID() {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(name, ws.ID(), maxAge, "/", "", c.Request.TLS != nil, true)
		}
		c.Set(workspaceKey, ws)
		c.Next()
	}
}

func workspaceFrom(c *gin.Context) *session.Workspace {
	ws, _ := c.MustGet(workspaceKey).(*session.Workspace)
	return ws
}
