package auth

import "github.com/gin-gonic/gin"

const sessionKey = "session"

// SetSession stores the caller's session on the request context. The flat
// user_id / user_email / user_role keys are kept for role middleware.
func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
	c.Set("user_id", s.UserID.String())
	c.Set("user_email", s.Email)
	c.Set("user_role", string(s.Role))
}

// SessionFrom returns the session set by the auth middleware, or nil
func SessionFrom(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
