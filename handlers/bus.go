package handlers

import (
	"net/http"

	busRepo "busbook/database/repository/bus"
	"busbook/services/bus"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// BusHandler exposes fleet endpoints.
type BusHandler struct {
	Service bus.BusService
}

func NewBusHandler(svc bus.BusService) *BusHandler {
	return &BusHandler{Service: svc}
}

// CreateBusHandler handles POST /api/buses.
func (h *BusHandler) CreateBusHandler(c *gin.Context) {
	var input bus.CreateBusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	b, err := h.Service.CreateBus(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bus created successfully.", "bus": b})
}

// GetBusesHandler handles GET /api/buses with optional operator_id,
// bus_number, and status query filters.
func (h *BusHandler) GetBusesHandler(c *gin.Context) {
	f := busRepo.Filter{
		OperatorID: c.Query("operator_id"),
		BusNumber:  c.Query("bus_number"),
		Status:     c.Query("status"),
	}
	buses, err := h.Service.SearchBuses(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Buses retrieved successfully.", "buses": buses})
}

// UpdateBusHandler handles PUT /api/buses/:id.
func (h *BusHandler) UpdateBusHandler(c *gin.Context) {
	var updates bus.BusUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	b, err := h.Service.UpdateBus(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus updated successfully.", "bus": b})
}

// DeleteBusHandler handles DELETE /api/buses/:id.
func (h *BusHandler) DeleteBusHandler(c *gin.Context) {
	if err := h.Service.DeleteBus(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted successfully."})
}
