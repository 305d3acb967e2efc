package permit

import (
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

// CreatePermitInput is the request to register a permit.
type CreatePermitInput struct {
	BusID        string     `json:"bus_id"`
	OperatorID   string     `json:"operator_id"`
	RouteID      string     `json:"route_id"`
	ValidThrough *time.Time `json:"valid_through,omitempty"`
}

// PermitService owns the permit approval state machine.
type PermitService interface {
	CreatePermit(input CreatePermitInput) (*models.Permit, error)
	GetPermit(id string) (*models.Permit, error)
	SearchPermits(f permitRepo.Filter) ([]models.Permit, error)
	UpdatePermitStatus(id string, status string, comment string) (*models.Permit, error)
	DeletePermit(id string) error
}

// DefaultPermitService is the production permit service.
type DefaultPermitService struct {
	Repo         permitRepo.PermitRepository
	BusRepo      busRepo.BusRepository
	OperatorRepo operatorRepo.OperatorRepository
	RouteRepo    routeRepo.RouteRepository
}

// CreatePermit validates the referenced bus, operator, and route and creates
// the permit in pending state. All violations are collected and returned
// together.
func (s *DefaultPermitService) CreatePermit(input CreatePermitInput) (*models.Permit, error) {
	var errs []string
	if input.BusID == "" {
		errs = append(errs, "Bus ID is required.")
	} else if _, err := s.BusRepo.GetByID(input.BusID); err != nil {
		errs = append(errs, "Bus not found.")
	}
	if input.OperatorID == "" {
		errs = append(errs, "Operator ID is required.")
	} else if _, err := s.OperatorRepo.GetByID(input.OperatorID); err != nil {
		errs = append(errs, "Bus operator not found.")
	}
	if input.RouteID == "" {
		errs = append(errs, "Route ID is required.")
	} else if _, err := s.RouteRepo.GetByID(input.RouteID); err != nil {
		errs = append(errs, "Route not found.")
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	p := &models.Permit{
		ID:           uuid.New().String(),
		BusID:        input.BusID,
		OperatorID:   input.OperatorID,
		RouteID:      input.RouteID,
		PermitStatus: models.PermitPending,
		ValidThrough: input.ValidThrough,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPermit retrieves a permit by id.
func (s *DefaultPermitService) GetPermit(id string) (*models.Permit, error) {
	return s.Repo.GetByID(id)
}

// SearchPermits retrieves permits matching the filter. No matches is a
// not-found outcome per the API contract.
func (s *DefaultPermitService) SearchPermits(f permitRepo.Filter) ([]models.Permit, error) {
	permits, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(permits) == 0 {
		return nil, &utils.NotFoundError{Resource: "Permit"}
	}
	return permits, nil
}

// UpdatePermitStatus drives the approval state machine. Entering approved
// stamps approved_at and nulls rejected_at; entering rejected does the
// reverse; returning to pending clears both. The "one approved permit per
// bus" guard is enforced by the storage layer in the same write, so two
// concurrent approvals for one bus yield exactly one success.
func (s *DefaultPermitService) UpdatePermitStatus(id string, status string, comment string) (*models.Permit, error) {
	next := models.PermitStatus(status)
	if !next.Valid() {
		return nil, utils.NewValidationError("Invalid permit status.")
	}

	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !current.PermitStatus.CanTransition(next) {
		return nil, utils.NewValidationError("Permit status cannot change from " +
			string(current.PermitStatus) + " to " + string(next) + ".")
	}

	now := time.Now()
	set := bson.M{
		"permit_status":  string(next),
		"status_comment": comment,
	}
	switch next {
	case models.PermitApproved:
		set["approved_at"] = now
		set["rejected_at"] = nil
	case models.PermitRejected:
		set["rejected_at"] = now
		set["approved_at"] = nil
	case models.PermitPending:
		set["approved_at"] = nil
		set["rejected_at"] = nil
	}

	return s.Repo.UpdateStatus(id, set)
}

// DeletePermit removes a permit.
func (s *DefaultPermitService) DeletePermit(id string) error {
	return s.Repo.Delete(id)
}
