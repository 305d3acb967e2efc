package handlers

import (
	"net/http"

	bookingRepo "busbook/database/repository/booking"
	"busbook/models"
	"busbook/services/booking"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	b, err := h.Service.CreateBooking(input)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully.", "booking": b})
}

// GetBookingsHandler handles GET /api/bookings with optional user_id,
// schedule_id, and status query filters.
func (h *BookingHandler) GetBookingsHandler(c *gin.Context) {
	f := bookingRepo.Filter{
		UserID:     c.Query("user_id"),
		ScheduleID: c.Query("schedule_id"),
		Status:     c.Query("status"),
	}
	bookings, err := h.Service.ListBookings(f)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved successfully.", "bookings": bookings})
}

// GetBookingByIDHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingByIDHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateBookingHandler handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var updates models.BookingUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	b, err := h.Service.UpdateBooking(c.Param("id"), updates)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully.", "booking": b})
}

// DeleteBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	id := c.Param("id")
	b, err := h.Service.GetBooking(id)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	if err := h.Service.DeleteBooking(id); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully.", "booking": b})
}

// GetAvailableSeatsHandler handles GET /api/schedules/:id/available-seats.
func (h *BookingHandler) GetAvailableSeatsHandler(c *gin.Context) {
	availability, err := h.Service.GetAvailableSeats(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Available seats retrieved successfully.", "availability": availability})
}
