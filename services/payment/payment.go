package payment

import (
	bookingRepo "busbook/database/repository/booking"
	paymentRepo "busbook/database/repository/payment"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreatePaymentInput is the request to record a payment.
type CreatePaymentInput struct {
	BookingID            string            `json:"booking_id"`
	Amount               float64           `json:"amount"`
	PaymentMethod        string            `json:"payment_method"`
	TransactionReference string            `json:"transaction_reference"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// PaymentUpdate carries a partial payment update.
type PaymentUpdate struct {
	Amount *float64 `json:"amount,omitempty"`
	Status *string  `json:"status,omitempty"`
}

// PaymentService records settlements against bookings.
type PaymentService interface {
	CreatePayment(input CreatePaymentInput) (*models.Payment, error)
	SearchPayments(f paymentRepo.Filter) ([]models.Payment, error)
	UpdatePayment(id string, updates PaymentUpdate) (*models.Payment, error)
	DeletePayment(id string) error
}

// DefaultPaymentService is the production payment service.
type DefaultPaymentService struct {
	Repo        paymentRepo.PaymentRepository
	BookingRepo bookingRepo.BookingRepository
}

// CreatePayment validates the request and inserts the record. Duplicate
// transaction references are rejected by the unique index in the same write,
// not by a separate pre-read.
func (s *DefaultPaymentService) CreatePayment(input CreatePaymentInput) (*models.Payment, error) {
	var errs []string
	if input.BookingID == "" || uuid.Validate(input.BookingID) != nil {
		errs = append(errs, "Booking ID must be a valid UUID.")
	}
	if input.Amount <= 0 {
		errs = append(errs, "Amount must be a valid positive number.")
	}
	if input.PaymentMethod == "" {
		errs = append(errs, "Payment method is required.")
	}
	if input.TransactionReference == "" {
		errs = append(errs, "Transaction reference is required.")
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	p := &models.Payment{
		ID:                   uuid.New().String(),
		BookingID:            input.BookingID,
		Amount:               input.Amount,
		Status:               models.PaymentRecordPending,
		PaymentMethod:        input.PaymentMethod,
		TransactionReference: input.TransactionReference,
		Metadata:             input.Metadata,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SearchPayments retrieves payments matching the filter. No matches is a
// not-found outcome per the API contract.
func (s *DefaultPaymentService) SearchPayments(f paymentRepo.Filter) ([]models.Payment, error) {
	payments, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, &utils.NotFoundError{Resource: "Payment"}
	}
	return payments, nil
}

// UpdatePayment applies a partial update. Status changes must follow the
// payment transition table.
func (s *DefaultPaymentService) UpdatePayment(id string, updates PaymentUpdate) (*models.Payment, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	var errs []string
	set := bson.M{}

	if updates.Amount != nil {
		if *updates.Amount <= 0 {
			errs = append(errs, "Amount must be a valid positive number.")
		} else {
			set["amount"] = *updates.Amount
		}
	}
	if updates.Status != nil {
		next := models.PaymentStatus(*updates.Status)
		switch {
		case !next.Valid():
			errs = append(errs, "Invalid payment status.")
		case !current.Status.CanTransition(next):
			errs = append(errs, "Payment status cannot change from "+
				string(current.Status)+" to "+string(next)+".")
		default:
			set["status"] = string(next)
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

// DeletePayment removes a payment record.
func (s *DefaultPaymentService) DeletePayment(id string) error {
	return s.Repo.Delete(id)
}
