package auth

import (
	"errors"
	"net/http"

	"guideomra/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// RefreshToken handles POST /api/v1/auth/refresh
func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tokens, err := c.service.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Refresh token expired", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid refresh token", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokens, nil)
}

// GetMe handles GET /api/v1/auth/me
func (c *Controller) GetMe(ctx *gin.Context) {
	session := SessionFrom(ctx)
	if !session.IsAuthenticated() {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved successfully", toSessionResponse(session), nil)
}
