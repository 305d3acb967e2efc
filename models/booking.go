package models

import "time"

// BookingStatus is the lifecycle state of a seat booking.
type BookingStatus string

const (
	BookingReserved  BookingStatus = "reserved"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// ActiveBookingStatuses are the statuses that hold a seat. Bookings in any of
// these states count against the schedule's capacity; the partial unique index
// on (schedule_id, seat_number) is scoped to exactly this set.
var ActiveBookingStatuses = []string{string(BookingReserved), string(BookingConfirmed)}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingReserved:  {BookingConfirmed, BookingCanceled},
	BookingConfirmed: {BookingCanceled},
	BookingCanceled:  {},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is an allowed booking
// status transition. Setting the same status again is always allowed.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, t := range bookingTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// PaymentState is the payment progress of a booking.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
	PaymentFailed  PaymentState = "failed"
)

var paymentStateTransitions = map[PaymentState][]PaymentState{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentPaid:    {},
	PaymentFailed:  {},
}

func (s PaymentState) Valid() bool {
	_, ok := paymentStateTransitions[s]
	return ok
}

func (s PaymentState) CanTransition(next PaymentState) bool {
	if s == next {
		return true
	}
	for _, t := range paymentStateTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Booking reserves one seat on one schedule for a rider.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	UserID           string        `bson:"user_id" json:"user_id"`
	ScheduleID       string        `bson:"schedule_id" json:"schedule_id"`
	SeatNumber       int           `bson:"seat_number" json:"seat_number"`
	Status           BookingStatus `bson:"status" json:"status"`
	PaymentStatus    PaymentState  `bson:"payment_status" json:"payment_status"`
	Amount           float64       `bson:"amount" json:"amount"`
	PaymentReference string        `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	LockedUntil      *time.Time    `bson:"locked_until,omitempty" json:"locked_until,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingUpdate carries a partial booking update. Nil fields are left
// untouched.
type BookingUpdate struct {
	SeatNumber    *int     `json:"seat_number,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Status        *string  `json:"status,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
}

// SeatAvailability is the derived seat map for a schedule.
type SeatAvailability struct {
	ScheduleID string `json:"schedule_id"`
	TotalSeats int    `json:"total_seats"`
	Booked     []int  `json:"booked"`
	Available  []int  `json:"available"`
}
