package handlers

import (
	"net/http"

	operatorRepo "busbook/database/repository/operator"
	"busbook/services/operator"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// OperatorHandler exposes bus operator endpoints.
type OperatorHandler struct {
	Service operator.OperatorService
}

func NewOperatorHandler(svc operator.OperatorService) *OperatorHandler {
	return &OperatorHandler{Service: svc}
}

// CreateOperatorHandler handles POST /api/bus-operators.
func (h *OperatorHandler) CreateOperatorHandler(c *gin.Context) {
	var input operator.CreateOperatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	op, err := h.Service.CreateOperator(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bus operator created successfully.", "busOperator": op})
}

// GetOperatorsHandler handles GET /api/bus-operators with optional
// operator_name and status query filters.
func (h *OperatorHandler) GetOperatorsHandler(c *gin.Context) {
	f := operatorRepo.Filter{
		OperatorName: c.Query("operator_name"),
		Status:       c.Query("status"),
	}
	operators, err := h.Service.SearchOperators(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busOperators": operators})
}

// UpdateOperatorHandler handles PUT /api/bus-operators/:id.
func (h *OperatorHandler) UpdateOperatorHandler(c *gin.Context) {
	var updates operator.OperatorUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	op, err := h.Service.UpdateOperator(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus operator updated successfully.", "busOperator": op})
}

// DeleteOperatorHandler handles DELETE /api/bus-operators/:id.
func (h *OperatorHandler) DeleteOperatorHandler(c *gin.Context) {
	if err := h.Service.DeleteOperator(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus operator deleted successfully."})
}
