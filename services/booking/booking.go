package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "busbook/database/repository/booking"
	busRepo "busbook/database/repository/bus"
	scheduleRepo "busbook/database/repository/schedule"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultBookingService is the production booking service.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ScheduleRepo scheduleRepo.ScheduleRepository
	BusRepo      busRepo.BusRepository
	Expiry       ExpiryScheduler
}

// CreateBooking validates the request, collecting every violation rather than
// stopping at the first, then reserves the seat with a single atomic insert.
// The advisory pre-check lets a taken seat be reported alongside other field
// errors; the unique index remains the authority, so a concurrent winner
// still turns this call into the same seat conflict.
func (s *DefaultBookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	var errs []string
	if input.UserID == "" || uuid.Validate(input.UserID) != nil {
		errs = append(errs, "User ID must be a valid UUID.")
	}
	if input.ScheduleID == "" || uuid.Validate(input.ScheduleID) != nil {
		errs = append(errs, "Schedule ID must be a valid UUID.")
	}
	if input.SeatNumber <= 0 {
		errs = append(errs, "Seat number must be a valid positive integer.")
	}
	if input.Amount <= 0 {
		errs = append(errs, "Amount must be a valid positive number.")
	}

	if input.ScheduleID != "" && input.SeatNumber > 0 {
		reserved, err := s.Repo.IsSeatReserved(input.ScheduleID, input.SeatNumber)
		if err != nil {
			return nil, err
		}
		if reserved {
			errs = append(errs, seatTakenMessage(input.SeatNumber))
		}
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		ScheduleID:    input.ScheduleID,
		SeatNumber:    input.SeatNumber,
		Status:        models.BookingReserved,
		PaymentStatus: models.PaymentPending,
		Amount:        input.Amount,
	}
	if input.HoldMinutes > 0 {
		until := time.Now().Add(time.Duration(input.HoldMinutes) * time.Minute)
		b.LockedUntil = &until
	}

	if err := s.Repo.Create(b); err != nil {
		var ce *utils.ConflictError
		if errors.As(err, &ce) {
			// Lost the race after the advisory check passed.
			return nil, utils.NewValidationError(ce.Message)
		}
		return nil, err
	}

	if b.LockedUntil != nil && s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(b.ID, b.LockedUntil.Unix()); err != nil {
			utils.GetLogger().Warn("failed to schedule reservation expiry",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

// GetBooking retrieves a booking by id.
func (s *DefaultBookingService) GetBooking(id string) (*models.Booking, error) {
	return s.Repo.GetByID(id)
}

// ListBookings retrieves bookings matching the filter.
func (s *DefaultBookingService) ListBookings(f bookingRepo.Filter) ([]models.Booking, error) {
	return s.Repo.Search(f)
}

// UpdateBooking applies a partial update. Each supplied field is validated
// independently and every violation is reported. Status changes must follow
// the booking transition table. Reassigning the seat number does not re-run
// the advisory availability check; the storage-level unique index still
// rejects a reassignment that would double-book a seat.
func (s *DefaultBookingService) UpdateBooking(id string, updates models.BookingUpdate) (*models.Booking, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var errs []string
	set := bson.M{}

	if updates.SeatNumber != nil {
		if *updates.SeatNumber <= 0 {
			errs = append(errs, "Seat number must be a valid positive integer.")
		} else {
			set["seat_number"] = *updates.SeatNumber
		}
	}
	if updates.Amount != nil {
		if *updates.Amount <= 0 {
			errs = append(errs, "Amount must be a valid positive number.")
		} else {
			set["amount"] = *updates.Amount
		}
	}
	if updates.Status != nil {
		next := models.BookingStatus(*updates.Status)
		switch {
		case !next.Valid():
			errs = append(errs, "Invalid booking status.")
		case !current.Status.CanTransition(next):
			errs = append(errs, fmt.Sprintf("Booking status cannot change from %s to %s.", current.Status, next))
		default:
			set["status"] = string(next)
		}
	}
	if updates.PaymentStatus != nil {
		next := models.PaymentState(*updates.PaymentStatus)
		switch {
		case !next.Valid():
			errs = append(errs, "Invalid payment status.")
		case !current.PaymentStatus.CanTransition(next):
			errs = append(errs, fmt.Sprintf("Payment status cannot change from %s to %s.", current.PaymentStatus, next))
		default:
			set["payment_status"] = string(next)
		}
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}
	if len(set) == 0 {
		return current, nil
	}
	return s.Repo.Update(id, set)
}

// DeleteBooking hard-deletes a booking. Administrative override only.
func (s *DefaultBookingService) DeleteBooking(id string) error {
	return s.Repo.Delete(id)
}

// IsSeatReserved reports whether a non-canceled booking holds the seat.
func (s *DefaultBookingService) IsSeatReserved(scheduleID string, seatNumber int) (bool, error) {
	return s.Repo.IsSeatReserved(scheduleID, seatNumber)
}

// ExpireBooking cancels a held reservation whose lock has lapsed without
// payment. Invoked by the expiry worker; a booking that was confirmed, paid,
// or already canceled in the meantime is left alone.
func (s *DefaultBookingService) ExpireBooking(id string) error {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		var ne *utils.NotFoundError
		if errors.As(err, &ne) {
			return nil
		}
		return err
	}
	if b.Status != models.BookingReserved || b.PaymentStatus != models.PaymentPending {
		return nil
	}
	if b.LockedUntil == nil || b.LockedUntil.After(time.Now()) {
		return nil
	}

	utils.GetLogger().Info("expiring unpaid reservation",
		zap.String("bookingID", id), zap.Int("seat", b.SeatNumber))
	_, err = s.Repo.Update(id, bson.M{"status": string(models.BookingCanceled)})
	return err
}

func seatTakenMessage(seat int) string {
	return fmt.Sprintf("Seat number %d is already reserved for the selected schedule.", seat)
}
