package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/repository"
)

type vehiclePayload struct {
	VehicleNo           string `json:"vehicle_no" binding:"required"`
	VehicleRegistration string `json:"vehicle_registration"`
	Capacity            int    `json:"capacity"`
	InService           *bool  `json:"in_service"` // omitted = true on create, unchanged on update
}

func (p vehiclePayload) input() repository.VehicleInput {
	return repository.VehicleInput{
		VehicleNo:           p.VehicleNo,
		VehicleRegistration: p.VehicleRegistration,
		Capacity:            p.Capacity,
		InService:           p.InService,
	}
}

func ListVehicles(c *gin.Context) {
	vehicles, err := repository.ListVehicles(c.Request.Context(), config.DB)
	if err != nil {
		respondError(c, "ListVehicles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func CreateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !bindJSON(c, "CreateVehicle", &p) {
		return
	}
	v, err := repository.CreateVehicle(c.Request.Context(), config.DB, p.input())
	if err != nil {
		respondError(c, "CreateVehicle", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": v})
}

func UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p vehiclePayload
	if !bindJSON(c, "UpdateVehicle", &p) {
		return
	}
	v, err := repository.UpdateVehicle(c.Request.Context(), config.DB, id, p.input())
	if err != nil {
		respondError(c, "UpdateVehicle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": v})
}

// DeleteVehicle refuses vehicles still assigned in a route chain.
func DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := repository.DeleteVehicle(c.Request.Context(), config.DB, id); err != nil {
		respondError(c, "DeleteVehicle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
