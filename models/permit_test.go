package models

import "testing"

func TestPermitStatusTransitions(t *testing.T) {
	statuses := []PermitStatus{PermitPending, PermitApproved, PermitRejected}

	// Every pair of distinct states is reachable; approval is not one-way.
	for _, from := range statuses {
		for _, to := range statuses {
			if !from.CanTransition(to) {
				t.Errorf("CanTransition(%s -> %s) = false, want true", from, to)
			}
		}
	}
}

func TestPermitStatusValid(t *testing.T) {
	for _, s := range []PermitStatus{PermitPending, PermitApproved, PermitRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if PermitStatus("revoked").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentRecordPending, PaymentRecordPaid, true},
		{PaymentRecordPending, PaymentRecordFailed, true},
		{PaymentRecordPaid, PaymentRecordRefunded, true},
		{PaymentRecordPaid, PaymentRecordPending, false},
		{PaymentRecordFailed, PaymentRecordPaid, false},
		{PaymentRecordRefunded, PaymentRecordPaid, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
