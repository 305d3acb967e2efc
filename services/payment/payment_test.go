package payment

import (
	"errors"
	"sync"
	"testing"

	paymentRepo "busbook/database/repository/payment"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// memPaymentRepo is an in-memory PaymentRepository enforcing the unique
// transaction_reference index inside Create.
type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *memPaymentRepo) Create(p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.payments {
		if other.TransactionReference == p.TransactionReference {
			return &utils.ConflictError{Message: "A payment with this transaction reference already exists."}
		}
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Payment"}
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) Search(f paymentRepo.Filter) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if f.BookingID != "" && p.BookingID != f.BookingID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.TransactionReference != "" && p.TransactionReference != f.TransactionReference {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memPaymentRepo) Update(id string, set bson.M) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Payment"}
	}
	next := *p
	if v, ok := set["amount"]; ok {
		next.Amount = v.(float64)
	}
	if v, ok := set["status"]; ok {
		next.Status = models.PaymentStatus(v.(string))
	}
	r.payments[id] = &next
	cp := next
	return &cp, nil
}

func (r *memPaymentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return &utils.NotFoundError{Resource: "Payment"}
	}
	delete(r.payments, id)
	return nil
}

func newPaymentService() *DefaultPaymentService {
	return &DefaultPaymentService{Repo: newMemPaymentRepo()}
}

func validPayment(ref string) CreatePaymentInput {
	return CreatePaymentInput{
		BookingID:            uuid.New().String(),
		Amount:               450,
		PaymentMethod:        "mobile_money",
		TransactionReference: ref,
	}
}

func TestCreatePaymentCollectsAllViolations(t *testing.T) {
	svc := newPaymentService()
	_, err := svc.CreatePayment(CreatePaymentInput{BookingID: "nope", Amount: 0})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestCreatePaymentStartsPending(t *testing.T) {
	svc := newPaymentService()
	p, err := svc.CreatePayment(validPayment("txn-1001"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Status != models.PaymentRecordPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
}

func TestDuplicateTransactionReference(t *testing.T) {
	svc := newPaymentService()
	if _, err := svc.CreatePayment(validPayment("txn-2002")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreatePayment(validPayment("txn-2002"))
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate reference, got %v", err)
	}
}

func TestUpdatePaymentTransitions(t *testing.T) {
	svc := newPaymentService()
	p, err := svc.CreatePayment(validPayment("txn-3003"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	paid := string(models.PaymentRecordPaid)
	if _, err := svc.UpdatePayment(p.ID, PaymentUpdate{Status: &paid}); err != nil {
		t.Fatalf("pending -> paid failed: %v", err)
	}

	refunded := string(models.PaymentRecordRefunded)
	if _, err := svc.UpdatePayment(p.ID, PaymentUpdate{Status: &refunded}); err != nil {
		t.Fatalf("paid -> refunded failed: %v", err)
	}

	pending := string(models.PaymentRecordPending)
	_, err = svc.UpdatePayment(p.ID, PaymentUpdate{Status: &pending})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("refunded -> pending should fail with ValidationError, got %v", err)
	}
}

func TestSearchPaymentsEmptyIsNotFound(t *testing.T) {
	svc := newPaymentService()
	_, err := svc.SearchPayments(paymentRepo.Filter{BookingID: uuid.New().String()})
	var ne *utils.NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotFoundError for empty search, got %v", err)
	}
}
