package models

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingReserved, BookingConfirmed, true},
		{BookingReserved, BookingCanceled, true},
		{BookingConfirmed, BookingCanceled, true},
		{BookingConfirmed, BookingReserved, false},
		{BookingCanceled, BookingReserved, false},
		{BookingCanceled, BookingConfirmed, false},
		{BookingReserved, BookingReserved, true},
		{BookingCanceled, BookingCanceled, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestPaymentStateTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentState
		to      PaymentState
		allowed bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPaid, PaymentPending, false},
		{PaymentPaid, PaymentFailed, false},
		{PaymentFailed, PaymentPaid, false},
		{PaymentFailed, PaymentPending, false},
		{PaymentPending, PaymentPending, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingReserved, BookingConfirmed, BookingCanceled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("expired").Valid() {
		t.Error("unknown status should not be valid")
	}
}
