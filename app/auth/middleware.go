package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/database"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "geeknews_session"

const sessionContextKey = "session"

// SessionFromRequest resolves the request's session cookie, returning nil
// for anonymous requests.
func (s *Service) SessionFromRequest(c *gin.Context) (*database.Session, error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, nil
	}
	return s.Resolve(token)
}

// RequireAuth gates handlers behind an authenticated session.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.SessionFromRequest(c)
		if err != nil {
			slog.Error("Session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "msg": "Not authorized, log in first"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin gates handlers behind the admin role. The role is checked
// directly on the resolved session rather than assuming RequireAuth ran.
func (s *Service) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.SessionFromRequest(c)
		if err != nil {
			slog.Error("Session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
			return
		}
		if session == nil || session.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "msg": "Admin only"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireAuth / RequireAdmin.
func CurrentSession(c *gin.Context) *database.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if session, ok := v.(*database.Session); ok {
			return session
		}
	}
	return nil
}
