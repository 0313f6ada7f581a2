package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ice-breaker/internal/auth"
	"ice-breaker/internal/db"
)

const sessionKey = "platform_session"

// requireAuth gates protected views on an authenticated platform session.
// Anonymous visitors are redirected to the sign-in view; a stale token is
// refreshed in place when possible. Refresh failures clear the session and
// redirect rather than erroring: navigation never aborts on a guard failure.
func (s *Server) requireAuth(c *gin.Context) {
	record := s.sessions.Current(c)
	if !record.Authenticated() {
		s.redirectToLogin(c)
		return
	}
	if record.ExpiresAt != nil && time.Now().After(record.ExpiresAt.Add(-time.Minute)) {
		if record.RefreshToken == "" {
			s.sessions.ClearTokens(c)
			s.redirectToLogin(c)
			return
		}
		session, err := auth.Refresh(c.Request.Context(), s.client, record.RefreshToken)
		if err != nil {
			log.Printf("session refresh failed session_id=%s: %v", record.ID, err)
			s.sessions.ClearTokens(c)
			s.redirectToLogin(c)
			return
		}
		meta := record.UserMeta
		s.sessions.StoreTokens(c, session.AccessToken, session.RefreshToken, session.ExpiresAt, record.UserID, record.Email, meta)
		record = s.sessions.Current(c)
	}
	c.Set(sessionKey, record)
	c.Next()
}

func (s *Server) redirectToLogin(c *gin.Context) {
	if wantsJSON(c) {
		writeError(c.Writer, http.StatusUnauthorized, "sign in required")
	} else {
		c.Redirect(http.StatusFound, "/login")
	}
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == "application/json" || c.GetHeader("Accept") == "application/json"
}

// currentToken returns the request's platform access token, empty for
// guests.
func (s *Server) currentToken(c *gin.Context) string {
	if value, ok := c.Get(sessionKey); ok {
		if record, ok := value.(db.Session); ok {
			return record.AccessToken
		}
	}
	return s.sessions.Current(c).AccessToken
}
