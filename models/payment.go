package models

import "time"

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentRecordPending  PaymentStatus = "pending"
	PaymentRecordPaid     PaymentStatus = "paid"
	PaymentRecordFailed   PaymentStatus = "failed"
	PaymentRecordRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentRecordPending:  {PaymentRecordPaid, PaymentRecordFailed},
	PaymentRecordPaid:     {PaymentRecordRefunded},
	PaymentRecordFailed:   {},
	PaymentRecordRefunded: {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, t := range paymentTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Payment records a settlement attempt against a booking.
// TransactionReference is unique across all payments.
type Payment struct {
	ID                   string            `bson:"id" json:"id"`
	BookingID            string            `bson:"booking_id" json:"booking_id"`
	Amount               float64           `bson:"amount" json:"amount"`
	Status               PaymentStatus     `bson:"status" json:"status"`
	PaymentMethod        string            `bson:"payment_method" json:"payment_method"`
	TransactionReference string            `bson:"transaction_reference" json:"transaction_reference"`
	Metadata             map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt            time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time         `bson:"updated_at" json:"updated_at"`
}
