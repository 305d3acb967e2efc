package booking

import (
	bookingRepo "busbook/database/repository/booking"
	"busbook/models"
)

// CreateBookingInput is the request to reserve a seat.
type CreateBookingInput struct {
	UserID      string  `json:"user_id"`
	ScheduleID  string  `json:"schedule_id"`
	SeatNumber  int     `json:"seat_number"`
	Amount      float64 `json:"amount"`
	HoldMinutes int     `json:"hold_minutes,omitempty"`
}

// BookingService owns the booking lifecycle: seat reservation under the
// uniqueness invariant, status transitions, and derived availability.
type BookingService interface {
	CreateBooking(input CreateBookingInput) (*models.Booking, error)
	GetBooking(id string) (*models.Booking, error)
	ListBookings(f bookingRepo.Filter) ([]models.Booking, error)
	UpdateBooking(id string, updates models.BookingUpdate) (*models.Booking, error)
	DeleteBooking(id string) error
	IsSeatReserved(scheduleID string, seatNumber int) (bool, error)
	GetAvailableSeats(scheduleID string) (*models.SeatAvailability, error)
	ExpireBooking(id string) error
}

// ExpiryScheduler schedules a one-shot expiry check for a held reservation.
// Implemented by the asynq-backed worker; nil disables seat holds.
type ExpiryScheduler interface {
	ScheduleExpiry(bookingID string, at int64) error
}
