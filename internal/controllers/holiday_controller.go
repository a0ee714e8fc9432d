package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/repository"
)

// loadCalendar builds the holiday calendar with the administrator's custom
// holidays layered on top of the built-in table.
func loadCalendar(ctx context.Context) (*dispatch.Calendar, error) {
	custom, err := repository.LoadHolidayEntries(ctx, config.DB)
	if err != nil {
		return nil, err
	}
	return dispatch.NewCalendar(custom...), nil
}

// ListHolidays returns the public and custom holidays of ?year (default: this
// year). "complete" is false when the built-in table has no lunar or
// substitute holidays for that year.
func ListHolidays(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 2200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = y
	}

	calendar, err := loadCalendar(c.Request.Context())
	if err != nil {
		respondError(c, "ListHolidays", err)
		return
	}
	complete := dispatch.HasDatedHolidays(year)
	if !complete {
		logrus.WithField("year", year).Warn("ListHolidays: no lunar or substitute holidays known for year")
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "complete": complete, "holidays": calendar.Holidays(year)})
}

// SaveHoliday adds or renames a custom holiday.
func SaveHoliday(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Name string `json:"name" binding:"required"`
	}
	if !bindJSON(c, "SaveHoliday", &input) {
		return
	}
	h, err := repository.SaveHoliday(c.Request.Context(), config.DB, input.Date, input.Name)
	if err != nil {
		respondError(c, "SaveHoliday", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holiday": h})
}

// DeleteHoliday removes a custom holiday; built-in holidays cannot be deleted.
func DeleteHoliday(c *gin.Context) {
	if err := repository.DeleteHoliday(c.Request.Context(), config.DB, c.Param("date")); err != nil {
		respondError(c, "DeleteHoliday", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted successfully"})
}
