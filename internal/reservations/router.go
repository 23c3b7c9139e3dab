package reservations

import (
	"guideomra/internal/auth"
	"guideomra/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, tokens auth.Service) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("/quote", controller.QuoteReservation) // POST /api/v1/reservations/quote

		protected := reservations.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			protected.POST("", controller.CreateReservation)          // POST /api/v1/reservations
			protected.GET("", controller.ListReservations)            // GET /api/v1/reservations
			protected.GET("/:id/voucher", controller.DownloadVoucher) // GET /api/v1/reservations/:id/voucher
		}
	}
}
