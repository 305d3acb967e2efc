package handlers

import (
	"net/http"

	routeRepo "busbook/database/repository/route"
	"busbook/services/route"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// RouteHandler exposes service route endpoints.
type RouteHandler struct {
	Service route.RouteService
}

func NewRouteHandler(svc route.RouteService) *RouteHandler {
	return &RouteHandler{Service: svc}
}

// CreateRouteHandler handles POST /api/routes.
func (h *RouteHandler) CreateRouteHandler(c *gin.Context) {
	var input route.CreateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	rt, err := h.Service.CreateRoute(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Route created successfully", "route": rt})
}

// GetRoutesHandler handles GET /api/routes with optional route_no, from, and
// to query filters.
func (h *RouteHandler) GetRoutesHandler(c *gin.Context) {
	f := routeRepo.Filter{
		RouteNo: c.Query("route_no"),
		From:    c.Query("from"),
		To:      c.Query("to"),
	}
	routes, err := h.Service.SearchRoutes(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// UpdateRouteHandler handles PUT /api/routes/:id.
func (h *RouteHandler) UpdateRouteHandler(c *gin.Context) {
	var updates route.RouteUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	rt, err := h.Service.UpdateRoute(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route updated successfully.", "route": rt})
}

// DeleteRouteHandler handles DELETE /api/routes/:id.
func (h *RouteHandler) DeleteRouteHandler(c *gin.Context) {
	if err := h.Service.DeleteRoute(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully."})
}
