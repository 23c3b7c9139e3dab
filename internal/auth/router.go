package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	requireJWT gin.HandlerFunc
}

// NewRouter creates a new auth router. requireJWT is the session middleware;
// it is injected because the middleware package depends on this one.
func NewRouter(controller *Controller, requireJWT gin.HandlerFunc) *Router {
	return &Router{
		controller: controller,
		requireJWT: requireJWT,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/refresh", authRouter.controller.RefreshToken)

		protected := auth.Group("")
		protected.Use(authRouter.requireJWT)
		{
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
