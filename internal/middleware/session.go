package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderSessionID lets API clients pick their session explicitly.
	HeaderSessionID = "X-Session-ID"
	// ContextSessionID is the gin context key of the resolved session id.
	ContextSessionID = "session_id"
)

// sessionIDPattern keeps ids safe to embed in storage keys.
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// SessionOptions configures the session cookie. MaxAge is in seconds.
type SessionOptions struct {
	CookieName string
	MaxAge     int
	Secure     bool
}

// SessionMiddleware resolves the visitor's session from the X-Session-ID header
// or the session cookie, issuing a new id when neither holds a valid one.
// Cookie sessions get their cookie re-issued on every request so an active
// visitor never loses it.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderSessionID)
		if !sessionIDPattern.MatchString(id) {
			id, _ = c.Cookie(opts.CookieName)
			if !sessionIDPattern.MatchString(id) {
				id = uuid.NewString()
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, id, opts.MaxAge, "/", "", opts.Secure, true)
		}

		c.Set(ContextSessionID, id)
		c.Header(HeaderSessionID, id)
		c.Next()
	}
}

// GetSessionID returns the session id resolved by SessionMiddleware.
func GetSessionID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextSessionID)
	return id, id != ""
}
