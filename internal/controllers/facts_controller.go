package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/logger"
	"senior_dispatch/internal/repository"
)

type leavePayload struct {
	ExternalID string `json:"id" binding:"required"`
	UserName   string `json:"user_name" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
	Duration   string `json:"duration" binding:"required"`
	Type       string `json:"type"`
}

// dateWindow reads the start and end query dates, answering 400 when either
// is missing or malformed.
func dateWindow(c *gin.Context) (string, string, bool) {
	start, err := dispatch.ParseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return "", "", false
	}
	end, err := dispatch.ParseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
		return "", "", false
	}
	return dispatch.DateKey(start), dispatch.DateKey(end), true
}

// SyncLeaveRequests upserts a batch of leave requests pushed by the
// leave-management service. The batch is applied all-or-nothing.
func SyncLeaveRequests(c *gin.Context) {
	var input struct {
		LeaveRequests []leavePayload `json:"leave_requests" binding:"required,dive"`
	}
	if !bindJSON(c, "SyncLeaveRequests", &input) {
		return
	}

	batch := make([]repository.LeaveInput, len(input.LeaveRequests))
	for i, l := range input.LeaveRequests {
		batch[i] = repository.LeaveInput{
			ExternalID: l.ExternalID,
			UserName:   l.UserName,
			Date:       l.Date,
			Status:     l.Status,
			Duration:   l.Duration,
			Type:       l.Type,
		}
	}

	n, err := repository.UpsertLeaveRequests(c.Request.Context(), config.DB, batch)
	if err != nil {
		respondError(c, "SyncLeaveRequests", err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"req_id": logger.RequestID(c.Request.Context()),
		"count":  n,
	}).Info("leave requests synced")
	c.JSON(http.StatusOK, gin.H{"upserted": n})
}

// ListLeaveRequests returns stored leave requests dated within ?start&end.
func ListLeaveRequests(c *gin.Context) {
	start, end, ok := dateWindow(c)
	if !ok {
		return
	}
	leaves, err := repository.ListLeaveRequests(c.Request.Context(), config.DB, start, end)
	if err != nil {
		respondError(c, "ListLeaveRequests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave_requests": leaves})
}

// RecordAbsence marks a senior absent on a date. Repeating the call is harmless.
func RecordAbsence(c *gin.Context) {
	var input struct {
		SeniorID uint   `json:"senior_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Reason   string `json:"reason"`
	}
	if !bindJSON(c, "RecordAbsence", &input) {
		return
	}
	a, err := repository.RecordAbsence(c.Request.Context(), config.DB, input.SeniorID, input.Date, input.Reason)
	if err != nil {
		respondError(c, "RecordAbsence", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"absence": a})
}

func DeleteAbsence(c *gin.Context) {
	seniorID, ok := parseID(c, "senior_id")
	if !ok {
		return
	}
	if err := repository.DeleteAbsence(c.Request.Context(), config.DB, seniorID, c.Param("date")); err != nil {
		respondError(c, "DeleteAbsence", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Absence deleted successfully"})
}

func ListAbsences(c *gin.Context) {
	start, end, ok := dateWindow(c)
	if !ok {
		return
	}
	absences, err := repository.ListAbsences(c.Request.Context(), config.DB, start, end)
	if err != nil {
		respondError(c, "ListAbsences", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"absences": absences})
}
