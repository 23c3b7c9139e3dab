package middleware

import (
	"errors"
	"net/http"
	"strings"

	"guideomra/internal/auth"
	"guideomra/internal/shared/utils/response"
	"guideomra/pkg/logger"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("authorization header format must be Bearer {token}")
	}
	return parts[1], nil
}

// JWTAuth requires a valid access token and stores the caller's session
func JWTAuth(tokens auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			c.Abort()
			return
		}

		session, err := tokens.ParseAccessToken(tokenString)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			message := "invalid or expired token"
			if errors.Is(err, auth.ErrInvalidTokenType) {
				message = "invalid token type"
			}
			response.RespondJSON(c, "error", http.StatusUnauthorized, message, nil, nil)
			c.Abort()
			return
		}

		auth.SetSession(c, session)
		c.Next()
	}
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.SessionFrom(c)
		if !session.IsAuthenticated() {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user role not found in context", nil, nil)
			c.Abort()
			return
		}

		if !session.HasRole(requiredRoles...) {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
