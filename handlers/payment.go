package handlers

import (
	"net/http"

	paymentRepo "busbook/database/repository/payment"
	"busbook/services/payment"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreatePaymentHandler handles POST /api/payments.
func (h *PaymentHandler) CreatePaymentHandler(c *gin.Context) {
	var input payment.CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	p, err := h.Service.CreatePayment(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment created successfully.", "payment": p})
}

// GetPaymentsHandler handles GET /api/payments with optional booking_id,
// status, and transaction_reference query filters.
func (h *PaymentHandler) GetPaymentsHandler(c *gin.Context) {
	f := paymentRepo.Filter{
		BookingID:            c.Query("booking_id"),
		Status:               c.Query("status"),
		TransactionReference: c.Query("transaction_reference"),
	}
	payments, err := h.Service.SearchPayments(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payments retrieved successfully.", "payments": payments})
}

// UpdatePaymentHandler handles PUT /api/payments/:id.
func (h *PaymentHandler) UpdatePaymentHandler(c *gin.Context) {
	var updates payment.PaymentUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	p, err := h.Service.UpdatePayment(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated successfully.", "payment": p})
}

// DeletePaymentHandler handles DELETE /api/payments/:id.
func (h *PaymentHandler) DeletePaymentHandler(c *gin.Context) {
	if err := h.Service.DeletePayment(c.Param("id")); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully."})
}
