package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"senior_dispatch/internal/config"
	"senior_dispatch/internal/models"
	"senior_dispatch/internal/repository"
)

// RouteResponse mirrors models.Route with the path as a GeoJSON string.
type RouteResponse struct {
	ID          uint                 `json:"ID"`
	CreatedAt   time.Time            `json:"CreatedAt"`
	UpdatedAt   time.Time            `json:"UpdatedAt"`
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	Description string               `json:"description"`
	Geometry    string               `json:"geometry"`
	Drivers     []models.RouteDriver `json:"drivers"`
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, err := routePathGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("toRouteResponse: stored path is not valid WKB")
	}
	drivers := route.Drivers
	if drivers == nil {
		drivers = []models.RouteDriver{}
	}
	return RouteResponse{
		ID:          route.ID,
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
		Name:        route.Name,
		Type:        route.Type,
		Description: route.Description,
		Geometry:    jsonGeom,
		Drivers:     drivers,
	}
}

// chainSlotPayload is one driver chain entry; the first entry is the primary.
type chainSlotPayload struct {
	DriverID  uint  `json:"driver_id" binding:"required"`
	VehicleID *uint `json:"vehicle_id"`
}

func toChain(in []chainSlotPayload) []repository.ChainSlot {
	out := make([]repository.ChainSlot, len(in))
	for i, s := range in {
		out[i] = repository.ChainSlot{DriverID: s.DriverID, VehicleID: s.VehicleID}
	}
	return out
}

// ListRoutes returns every route with its driver chain.
func ListRoutes(c *gin.Context) {
	routes, err := repository.ListRoutes(c.Request.Context(), config.DB)
	if err != nil {
		respondError(c, "ListRoutes", err)
		return
	}
	resp := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": resp})
}

func GetRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	route, err := repository.GetRoute(c.Request.Context(), config.DB, id)
	if err != nil {
		respondError(c, "GetRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

// CreateRoute stores a route, its optional GeoJSON path and its driver chain.
func CreateRoute(c *gin.Context) {
	var input struct {
		Name        string             `json:"name" binding:"required"`
		Type        string             `json:"type" binding:"required"`
		Description string             `json:"description"`
		Geometry    string             `json:"geometry"`
		Drivers     []chainSlotPayload `json:"drivers"`
	}
	if !bindJSON(c, "CreateRoute", &input) {
		return
	}

	wkbGeom, err := parseRoutePath(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route, err := repository.CreateRoute(c.Request.Context(), config.DB, repository.RouteInput{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Geometry:    wkbGeom,
		Drivers:     toChain(input.Drivers),
	})
	if err != nil {
		respondError(c, "CreateRoute", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(*route)})
}

// UpdateRoute patches route metadata. A "drivers" array replaces the whole
// chain; an empty "geometry" string clears the path.
func UpdateRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name        *string             `json:"name"`
		Type        *string             `json:"type"`
		Description *string             `json:"description"`
		Geometry    *string             `json:"geometry"`
		Drivers     *[]chainSlotPayload `json:"drivers"`
	}
	if !bindJSON(c, "UpdateRoute", &input) {
		return
	}

	patch := repository.RoutePatch{Name: input.Name, Type: input.Type, Description: input.Description}
	if input.Geometry != nil {
		if *input.Geometry == "" {
			patch.ClearGeometry = true
		} else {
			wkbGeom, err := parseRoutePath(*input.Geometry)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
				return
			}
			patch.Geometry = wkbGeom
		}
	}
	if input.Drivers != nil {
		chain := toChain(*input.Drivers)
		patch.Drivers = &chain
	}

	route, err := repository.UpdateRoute(c.Request.Context(), config.DB, id, patch)
	if err != nil {
		respondError(c, "UpdateRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}

// DeleteRoute removes a route that has no seniors left.
func DeleteRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := repository.DeleteRoute(c.Request.Context(), config.DB, id); err != nil {
		respondError(c, "DeleteRoute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
