package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	"senior_dispatch/internal/controllers"
	"senior_dispatch/internal/middleware"
)

// SetupRouter wires middleware and every route group. It does not start serving.
func SetupRouter() *gin.Engine {
	r := gin.New()

	// Access lines go through logrus so they land in the rotated log file.
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		ginlog.SetLogger(
			ginlog.WithWriter(logrus.StandardLogger().Writer()),
			ginlog.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
				return l.With().Str("req_id", c.GetString("req_id")).Logger()
			}),
			ginlog.WithSkipPath([]string{"/health"}),
			ginlog.WithUTC(true),
			ginlog.WithDefaultLevel(zerolog.InfoLevel),
			ginlog.WithClientErrorLevel(zerolog.WarnLevel),
			ginlog.WithServerErrorLevel(zerolog.ErrorLevel),
		),
	)

	r.GET("/health", controllers.Health)

	DispatchRoutes(r)
	HolidayRoutes(r)
	AdminRoutes(r)

	return r
}
