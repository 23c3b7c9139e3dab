package catalog

import (
	"guideomra/internal/auth"
	"guideomra/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller, tokens auth.Service) {
	services := rg.Group("/services")
	{
		services.GET("", controller.SearchServices) // GET /api/v1/services?q=&category=&city=&languages=&price_range=
		services.GET("/:id", controller.GetService) // GET /api/v1/services/:id
	}

	guides := rg.Group("/guides")
	{
		guides.GET("", controller.ListGuides)                    // GET /api/v1/guides
		guides.GET("/:id", controller.GetGuide)                  // GET /api/v1/guides/:id
		guides.GET("/:id/services", controller.GetGuideServices) // GET /api/v1/guides/:id/services

		reviewers := guides.Group("")
		reviewers.Use(middleware.JWTAuth(tokens), middleware.RequireRoles(auth.RolePilgrim))
		{
			reviewers.POST("/:id/reviews", controller.CreateReview) // POST /api/v1/guides/:id/reviews
		}
	}

	guide := rg.Group("/guide")
	guide.Use(middleware.JWTAuth(tokens), middleware.RequireRoles(auth.RoleGuide))
	{
		guide.POST("/services", controller.CreateService) // POST /api/v1/guide/services
	}
}
