package handlers

import (
	"net/http"

	permitRepo "busbook/database/repository/permit"
	"busbook/services/permit"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// PermitHandler exposes route permit endpoints.
type PermitHandler struct {
	Service permit.PermitService
}

func NewPermitHandler(svc permit.PermitService) *PermitHandler {
	return &PermitHandler{Service: svc}
}

// CreatePermitHandler handles POST /api/permits.
func (h *PermitHandler) CreatePermitHandler(c *gin.Context) {
	var input permit.CreatePermitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	p, err := h.Service.CreatePermit(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Permit created successfully", "permit": p})
}

// GetPermitsHandler handles GET /api/permits with optional bus_id,
// operator_id, route_id, and permit_status query filters.
func (h *PermitHandler) GetPermitsHandler(c *gin.Context) {
	f := permitRepo.Filter{
		BusID:      c.Query("bus_id"),
		OperatorID: c.Query("operator_id"),
		RouteID:    c.Query("route_id"),
		Status:     c.Query("permit_status"),
	}
	permits, err := h.Service.SearchPermits(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permits": permits})
}

// GetPermitByIDHandler handles GET /api/permits/:id.
func (h *PermitHandler) GetPermitByIDHandler(c *gin.Context) {
	p, err := h.Service.GetPermit(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permit": p})
}

// UpdatePermitStatusHandler handles PUT /api/permits/:id/status. Approval is
// where the one-approved-permit-per-bus invariant is enforced.
func (h *PermitHandler) UpdatePermitStatusHandler(c *gin.Context) {
	var input struct {
		PermitStatus  string `json:"permit_status"`
		StatusComment string `json:"status_comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	p, err := h.Service.UpdatePermitStatus(c.Param("id"), input.PermitStatus, input.StatusComment)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permit status updated successfully.", "permit": p})
}

// DeletePermitHandler handles DELETE /api/permits/:id.
func (h *PermitHandler) DeletePermitHandler(c *gin.Context) {
	if err := h.Service.DeletePermit(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permit deleted successfully."})
}
