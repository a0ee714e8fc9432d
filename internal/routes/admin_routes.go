package routes

import (
	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/controllers"
	"senior_dispatch/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/drivers", controllers.ListDrivers)
		admin.POST("/drivers", controllers.CreateDriver)
		admin.PUT("/drivers/:id", controllers.UpdateDriver)
		admin.DELETE("/drivers/:id", controllers.DeleteDriver)

		admin.GET("/vehicles", controllers.ListVehicles)
		admin.POST("/vehicles", controllers.CreateVehicle)
		admin.PUT("/vehicles/:id", controllers.UpdateVehicle)
		admin.DELETE("/vehicles/:id", controllers.DeleteVehicle)

		admin.GET("/routes", controllers.ListRoutes)
		admin.POST("/routes", controllers.CreateRoute)
		admin.GET("/routes/:id", controllers.GetRoute)
		admin.PATCH("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.GET("/seniors", controllers.ListSeniors)
		admin.POST("/seniors", controllers.CreateSenior)
		admin.PUT("/seniors/:id", controllers.UpdateSenior)
		admin.DELETE("/seniors/:id", controllers.DeleteSenior)

		admin.POST("/holidays", controllers.SaveHoliday)
		admin.DELETE("/holidays/:date", controllers.DeleteHoliday)

		admin.PUT("/leave-requests", controllers.SyncLeaveRequests)
		admin.GET("/leave-requests", controllers.ListLeaveRequests)

		admin.GET("/absences", controllers.ListAbsences)
		admin.POST("/absences", controllers.RecordAbsence)
		admin.DELETE("/absences/:senior_id/:date", controllers.DeleteAbsence)
	}
}
