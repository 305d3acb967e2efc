package bus

import (
	"strings"

	busRepo "busbook/database/repository/bus"
	operatorRepo "busbook/database/repository/operator"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateBusInput is the request to register a bus.
type CreateBusInput struct {
	OperatorID string `json:"operator_id"`
	BusNumber  string `json:"bus_number"`
	SeatsCount int    `json:"seats_count"`
}

// BusUpdate carries a partial bus update.
type BusUpdate struct {
	BusNumber  *string `json:"bus_number,omitempty"`
	SeatsCount *int    `json:"seats_count,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// BusService manages the fleet.
type BusService interface {
	CreateBus(input CreateBusInput) (*models.Bus, error)
	SearchBuses(f busRepo.Filter) ([]models.Bus, error)
	UpdateBus(id string, updates BusUpdate) (*models.Bus, error)
	DeleteBus(id string) error
}

// DefaultBusService is the production bus service.
type DefaultBusService struct {
	Repo         busRepo.BusRepository
	OperatorRepo operatorRepo.OperatorRepository
}

// CreateBus validates the request and registers the bus for its operator.
// Uniqueness of the bus number is enforced by the storage layer on insert.
func (s *DefaultBusService) CreateBus(input CreateBusInput) (*models.Bus, error) {
	var errs []string
	if input.OperatorID == "" {
		errs = append(errs, "Operator ID is required.")
	} else if _, err := s.OperatorRepo.GetByID(input.OperatorID); err != nil {
		errs = append(errs, "Operator not found.")
	}
	busNumber := strings.TrimSpace(input.BusNumber)
	if busNumber == "" {
		errs = append(errs, "Bus number must be a valid string and cannot be empty.")
	}
	if input.SeatsCount < 1 {
		errs = append(errs, "Seats count must be a positive number.")
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	b := &models.Bus{
		ID:         uuid.New().String(),
		OperatorID: input.OperatorID,
		BusNumber:  busNumber,
		SeatsCount: input.SeatsCount,
		Status:     models.BusActive,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// SearchBuses retrieves buses matching the filter. No matches is a not-found
// outcome per the API contract.
func (s *DefaultBusService) SearchBuses(f busRepo.Filter) ([]models.Bus, error) {
	buses, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(buses) == 0 {
		return nil, &utils.NotFoundError{Resource: "Bus"}
	}
	return buses, nil
}

// UpdateBus applies a partial update with per-field validation.
func (s *DefaultBusService) UpdateBus(id string, updates BusUpdate) (*models.Bus, error) {
	var errs []string
	set := bson.M{}

	if updates.BusNumber != nil {
		trimmed := strings.TrimSpace(*updates.BusNumber)
		if trimmed == "" {
			errs = append(errs, "Bus number must be a valid string and cannot be empty.")
		} else {
			set["bus_number"] = trimmed
		}
	}
	if updates.SeatsCount != nil {
		if *updates.SeatsCount < 1 {
			errs = append(errs, "Seats count must be a positive number.")
		} else {
			set["seats_count"] = *updates.SeatsCount
		}
	}
	if updates.Status != nil {
		next := models.BusStatus(*updates.Status)
		if !next.Valid() {
			errs = append(errs, "Status must be one of: active, inactive, under_maintenance.")
		} else {
			set["status"] = string(next)
		}
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}
	if len(set) == 0 {
		return s.Repo.GetByID(id)
	}
	return s.Repo.Update(id, set)
}

// DeleteBus removes a bus.
func (s *DefaultBusService) DeleteBus(id string) error {
	return s.Repo.Delete(id)
}
