package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Role of an authenticated account
type Role string

const (
	RolePilgrim Role = "PILGRIM"
	RoleGuide   Role = "GUIDE"
	RoleAdmin   Role = "ADMIN"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RolePilgrim, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Session is the authenticated caller. It is passed explicitly to every
// service that acts on behalf of a user; nothing reads it from globals.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// IsAuthenticated is false for a nil session or one without a user
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

// HasRole reports whether the session carries any of the roles
func (s *Session) HasRole(roles ...Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
