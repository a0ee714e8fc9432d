package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/logger"
	"senior_dispatch/internal/middleware"
	"senior_dispatch/internal/routes"
)

func main() {
	config.LoadEnv()

	// Initialize structured logging to file
	logger.Setup(config.LogFile(), config.LogLevel())

	middleware.SetSecret(config.JWTSecret())

	// Connect to the database
	config.InitDB()

	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r, config.CORSOrigins()...)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.Port(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	logrus.Info("server exited")
}
