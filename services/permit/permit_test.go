package permit

import (
	"errors"
	"sync"
	"testing"
	"time"

	busRepo "busbook/database/repository/bus"
	operatorRepo "busbook/database/repository/operator"
	permitRepo "busbook/database/repository/permit"
	routeRepo "busbook/database/repository/route"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// memPermitRepo is an in-memory PermitRepository that mirrors the partial
// unique index on (bus_id) where permit_status is approved: a status write
// that would yield a second approved permit for the same bus fails inside
// the same critical section that applies it.
type memPermitRepo struct {
	mu      sync.Mutex
	permits map[string]*models.Permit
}

func newMemPermitRepo() *memPermitRepo {
	return &memPermitRepo{permits: make(map[string]*models.Permit)}
}

func (r *memPermitRepo) Create(p *models.Permit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.permits[p.ID] = &cp
	return nil
}

func (r *memPermitRepo) GetByID(id string) (*models.Permit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.permits[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Permit"}
	}
	cp := *p
	return &cp, nil
}

func (r *memPermitRepo) Search(f permitRepo.Filter) ([]models.Permit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Permit
	for _, p := range r.permits {
		if f.BusID != "" && p.BusID != f.BusID {
			continue
		}
		if f.Status != "" && string(p.PermitStatus) != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memPermitRepo) UpdateStatus(id string, set bson.M) (*models.Permit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.permits[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Permit"}
	}
	next := *p
	if v, ok := set["permit_status"]; ok {
		next.PermitStatus = models.PermitStatus(v.(string))
	}
	if v, ok := set["status_comment"]; ok {
		next.StatusComment = v.(string)
	}
	if v, ok := set["approved_at"]; ok {
		if v == nil {
			next.ApprovedAt = nil
		} else {
			ts := v.(time.Time)
			next.ApprovedAt = &ts
		}
	}
	if v, ok := set["rejected_at"]; ok {
		if v == nil {
			next.RejectedAt = nil
		} else {
			ts := v.(time.Time)
			next.RejectedAt = &ts
		}
	}
	if next.PermitStatus == models.PermitApproved {
		for _, other := range r.permits {
			if other.ID != id && other.BusID == next.BusID && other.PermitStatus == models.PermitApproved {
				return nil, &utils.ConflictError{Message: "Another active permit already exists for this bus."}
			}
		}
	}
	r.permits[id] = &next
	cp := next
	return &cp, nil
}

func (r *memPermitRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.permits[id]; !ok {
		return &utils.NotFoundError{Resource: "Permit"}
	}
	delete(r.permits, id)
	return nil
}

type busRepoStub struct{ buses map[string]*models.Bus }

func (r *busRepoStub) Create(b *models.Bus) error { r.buses[b.ID] = b; return nil }
func (r *busRepoStub) GetByID(id string) (*models.Bus, error) {
	b, ok := r.buses[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Bus"}
	}
	return b, nil
}
func (r *busRepoStub) Search(busRepo.Filter) ([]models.Bus, error)       { return nil, nil }
func (r *busRepoStub) Update(id string, set bson.M) (*models.Bus, error) { return r.GetByID(id) }
func (r *busRepoStub) Delete(id string) error                            { return nil }

type operatorRepoStub struct{ operators map[string]*models.BusOperator }

func (r *operatorRepoStub) Create(o *models.BusOperator) error { r.operators[o.ID] = o; return nil }
func (r *operatorRepoStub) GetByID(id string) (*models.BusOperator, error) {
	o, ok := r.operators[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Bus operator"}
	}
	return o, nil
}
func (r *operatorRepoStub) GetByUserID(userID string) (*models.BusOperator, error) {
	return nil, nil
}
func (r *operatorRepoStub) Search(operatorRepo.Filter) ([]models.BusOperator, error) {
	return nil, nil
}
func (r *operatorRepoStub) Update(id string, set bson.M) (*models.BusOperator, error) {
	return r.GetByID(id)
}
func (r *operatorRepoStub) Delete(id string) error { return nil }

type routeRepoStub struct{ routes map[string]*models.Route }

func (r *routeRepoStub) Create(rt *models.Route) error { r.routes[rt.ID] = rt; return nil }
func (r *routeRepoStub) GetByID(id string) (*models.Route, error) {
	rt, ok := r.routes[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Route"}
	}
	return rt, nil
}
func (r *routeRepoStub) Search(routeRepo.Filter) ([]models.Route, error)   { return nil, nil }
func (r *routeRepoStub) Update(id string, set bson.M) (*models.Route, error) {
	return r.GetByID(id)
}
func (r *routeRepoStub) Delete(id string) error { return nil }

func newPermitService() (*DefaultPermitService, string, string, string) {
	busID := uuid.New().String()
	operatorID := uuid.New().String()
	routeID := uuid.New().String()
	svc := &DefaultPermitService{
		Repo: newMemPermitRepo(),
		BusRepo: &busRepoStub{buses: map[string]*models.Bus{
			busID: {ID: busID, SeatsCount: 40},
		}},
		OperatorRepo: &operatorRepoStub{operators: map[string]*models.BusOperator{
			operatorID: {ID: operatorID},
		}},
		RouteRepo: &routeRepoStub{routes: map[string]*models.Route{
			routeID: {ID: routeID},
		}},
	}
	return svc, busID, operatorID, routeID
}

func TestCreatePermitValidatesReferences(t *testing.T) {
	svc, _, operatorID, routeID := newPermitService()
	_, err := svc.CreatePermit(CreatePermitInput{
		BusID:      uuid.New().String(),
		OperatorID: operatorID,
		RouteID:    routeID,
	})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for missing bus, got %v", err)
	}
	if len(ve.Errors) != 1 || ve.Errors[0] != "Bus not found." {
		t.Fatalf("wrong violations: %v", ve.Errors)
	}
}

func TestPermitStartsPending(t *testing.T) {
	svc, busID, operatorID, routeID := newPermitService()
	p, err := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.PermitStatus != models.PermitPending {
		t.Errorf("status = %s, want pending", p.PermitStatus)
	}
	if p.ApprovedAt != nil || p.RejectedAt != nil {
		t.Error("new permit should carry no decision timestamps")
	}
}

func TestPermitTimestampExclusivity(t *testing.T) {
	svc, busID, operatorID, routeID := newPermitService()
	p, err := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	approved, err := svc.UpdatePermitStatus(p.ID, "approved", "all documents in order")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.ApprovedAt == nil || approved.RejectedAt != nil {
		t.Errorf("approved permit timestamps wrong: approved_at=%v rejected_at=%v",
			approved.ApprovedAt, approved.RejectedAt)
	}

	rejected, err := svc.UpdatePermitStatus(p.ID, "rejected", "withdrawn")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.RejectedAt == nil || rejected.ApprovedAt != nil {
		t.Errorf("rejected permit timestamps wrong: approved_at=%v rejected_at=%v",
			rejected.ApprovedAt, rejected.RejectedAt)
	}

	pending, err := svc.UpdatePermitStatus(p.ID, "pending", "re-review")
	if err != nil {
		t.Fatalf("return to pending failed: %v", err)
	}
	if pending.ApprovedAt != nil || pending.RejectedAt != nil {
		t.Error("pending permit should carry no decision timestamps")
	}
}

func TestPermitInvalidStatusRejected(t *testing.T) {
	svc, busID, operatorID, routeID := newPermitService()
	p, _ := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})

	_, err := svc.UpdatePermitStatus(p.ID, "revoked", "")
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}
}

func TestOneApprovedPermitPerBus(t *testing.T) {
	svc, busID, operatorID, routeID := newPermitService()

	first, _ := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})
	second, _ := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})

	if _, err := svc.UpdatePermitStatus(first.ID, "approved", ""); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}

	_, err := svc.UpdatePermitStatus(second.ID, "approved", "")
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("second approval should conflict, got %v", err)
	}

	// Withdrawing the first approval frees the slot for the second permit.
	if _, err := svc.UpdatePermitStatus(first.ID, "rejected", "superseded"); err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if _, err := svc.UpdatePermitStatus(second.ID, "approved", ""); err != nil {
		t.Fatalf("approval after withdrawal failed: %v", err)
	}
}

func TestConcurrentApprovalsOneWinner(t *testing.T) {
	svc, busID, operatorID, routeID := newPermitService()

	const n = 6
	ids := make([]string, n)
	for i := range ids {
		p, err := svc.CreatePermit(CreatePermitInput{BusID: busID, OperatorID: operatorID, RouteID: routeID})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids[i] = p.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.UpdatePermitStatus(id, "approved", "")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one approval to win, got %d", won)
	}
}

func TestSearchPermitsEmptyIsNotFound(t *testing.T) {
	svc, _, _, _ := newPermitService()
	_, err := svc.SearchPermits(permitRepo.Filter{BusID: uuid.New().String()})
	var ne *utils.NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotFoundError for empty search, got %v", err)
	}
}
