package routes

import (
	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/controllers"
	"senior_dispatch/internal/middleware"
)

func DispatchRoutes(r *gin.Engine) {
	dispatch := r.Group("/dispatch")
	dispatch.Use(middleware.RequireAuth())
	{
		dispatch.GET("/day/:date", controllers.GetDailyDispatch)
		dispatch.GET("/range", controllers.GetRangeDispatch)
		dispatch.GET("/month/:year/:month", controllers.GetMonthSummary)
		dispatch.GET("/stats", controllers.GetRangeStats)
	}
}

func HolidayRoutes(r *gin.Engine) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.RequireAuth())
	{
		holidays.GET("", controllers.ListHolidays)
	}
}
