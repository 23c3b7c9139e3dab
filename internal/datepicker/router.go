package datepicker

import "github.com/gin-gonic/gin"

func SetupCalendarRoutes(rg *gin.RouterGroup, controller *Controller) {
	cal := rg.Group("/calendar")
	{
		cal.GET("/:system", controller.GetGrid) // GET /api/v1/calendar/:system
		cal.POST("/pick", controller.Pick)      // POST /api/v1/calendar/pick
	}
}
