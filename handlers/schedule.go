package handlers

import (
	"net/http"

	scheduleRepo "busbook/database/repository/schedule"
	"busbook/services/schedule"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes trip schedule endpoints.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// CreateScheduleHandler handles POST /api/schedules.
func (h *ScheduleHandler) CreateScheduleHandler(c *gin.Context) {
	var input schedule.CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	s, err := h.Service.CreateSchedule(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Schedule created successfully.", "schedule": s})
}

// GetSchedulesHandler handles GET /api/schedules with optional route_id,
// bus_id, and status query filters.
func (h *ScheduleHandler) GetSchedulesHandler(c *gin.Context) {
	f := scheduleRepo.Filter{
		RouteID: c.Query("route_id"),
		BusID:   c.Query("bus_id"),
		Status:  c.Query("status"),
	}
	schedules, err := h.Service.ListSchedules(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedules retrieved successfully.", "schedules": schedules})
}

// UpdateScheduleHandler handles PUT /api/schedules/:id.
func (h *ScheduleHandler) UpdateScheduleHandler(c *gin.Context) {
	var updates schedule.ScheduleUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	s, err := h.Service.UpdateSchedule(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated successfully.", "schedule": s})
}

// DeleteScheduleHandler handles DELETE /api/schedules/:id.
func (h *ScheduleHandler) DeleteScheduleHandler(c *gin.Context) {
	if err := h.Service.DeleteSchedule(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully."})
}
