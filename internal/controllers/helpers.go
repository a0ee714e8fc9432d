package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"senior_dispatch/internal/logger"
	"senior_dispatch/internal/repository"
)

// parseID reads the named uint path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, repository.ErrDriverNameTaken),
		errors.Is(err, repository.ErrBoardingOrderTaken),
		errors.Is(err, repository.ErrDriverInUse),
		errors.Is(err, repository.ErrVehicleInUse),
		errors.Is(err, repository.ErrRouteInUse):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, repository.ErrEmptyDriverChain),
		errors.Is(err, repository.ErrDuplicateDriver),
		errors.Is(err, repository.ErrUnknownDriver),
		errors.Is(err, repository.ErrUnknownVehicle),
		errors.Is(err, repository.ErrVehicleOutOfService),
		errors.Is(err, repository.ErrInvalidRouteType),
		errors.Is(err, repository.ErrUnknownRoute),
		errors.Is(err, repository.ErrUnknownSenior),
		errors.Is(err, repository.ErrInvalidDate),
		errors.Is(err, repository.ErrInvalidLeave):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs err under op and writes it as {"error": ...}. Internal
// failures are not echoed to the client.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"op":     op,
		"req_id": logger.RequestID(c.Request.Context()),
	})
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	entry.Warn("request rejected")
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON decodes the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logrus.WithError(err).Warnf("%s: invalid input payload", op)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}
