package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/repository"
)

type seniorPayload struct {
	Name          string `json:"name" binding:"required"`
	RouteID       uint   `json:"route_id" binding:"required"`
	BoardingOrder int    `json:"boarding_order"` // 0 appends to the route
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

func (p seniorPayload) input() repository.SeniorInput {
	return repository.SeniorInput{
		Name:          p.Name,
		RouteID:       p.RouteID,
		BoardingOrder: p.BoardingOrder,
		Phone:         p.Phone,
		Address:       p.Address,
	}
}

// ListSeniors lists seniors in boarding order, optionally for one route_id.
func ListSeniors(c *gin.Context) {
	var routeID uint
	if raw := c.Query("route_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route_id"})
			return
		}
		routeID = uint(id)
	}

	seniors, err := repository.ListSeniors(c.Request.Context(), config.DB, routeID)
	if err != nil {
		respondError(c, "ListSeniors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seniors": seniors})
}

func CreateSenior(c *gin.Context) {
	var p seniorPayload
	if !bindJSON(c, "CreateSenior", &p) {
		return
	}
	s, err := repository.CreateSenior(c.Request.Context(), config.DB, p.input())
	if err != nil {
		respondError(c, "CreateSenior", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"senior": s})
}

func UpdateSenior(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p seniorPayload
	if !bindJSON(c, "UpdateSenior", &p) {
		return
	}
	s, err := repository.UpdateSenior(c.Request.Context(), config.DB, id, p.input())
	if err != nil {
		respondError(c, "UpdateSenior", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"senior": s})
}

// DeleteSenior also drops the senior's absence records.
func DeleteSenior(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := repository.DeleteSenior(c.Request.Context(), config.DB, id); err != nil {
		respondError(c, "DeleteSenior", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senior deleted successfully"})
}
