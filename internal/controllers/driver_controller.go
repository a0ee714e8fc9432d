package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/repository"
)

// driverPayload is the JSON body for creating or replacing a driver.
type driverPayload struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

func (p driverPayload) input() repository.DriverInput {
	return repository.DriverInput{Name: p.Name, Phone: p.Phone, LicenseNumber: p.LicenseNumber}
}

// ListDrivers returns every driver ordered by name.
func ListDrivers(c *gin.Context) {
	drivers, err := repository.ListDrivers(c.Request.Context(), config.DB)
	if err != nil {
		respondError(c, "ListDrivers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func CreateDriver(c *gin.Context) {
	var p driverPayload
	if !bindJSON(c, "CreateDriver", &p) {
		return
	}
	d, err := repository.CreateDriver(c.Request.Context(), config.DB, p.input())
	if err != nil {
		respondError(c, "CreateDriver", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": d})
}

// UpdateDriver replaces the editable fields of a driver. Renaming a driver
// changes which leave records apply to them.
func UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p driverPayload
	if !bindJSON(c, "UpdateDriver", &p) {
		return
	}
	d, err := repository.UpdateDriver(c.Request.Context(), config.DB, id, p.input())
	if err != nil {
		respondError(c, "UpdateDriver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": d})
}

func DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := repository.DeleteDriver(c.Request.Context(), config.DB, id); err != nil {
		respondError(c, "DeleteDriver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}
