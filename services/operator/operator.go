package operator

import (
	"strings"

	operatorRepo "busbook/database/repository/operator"
	userRepo "busbook/database/repository/user"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateOperatorInput is the request to register a bus operator.
type CreateOperatorInput struct {
	OperatorName string `json:"operator_name"`
	UserID       string `json:"user_id"`
	Address      string `json:"address,omitempty"`
}

// OperatorUpdate carries a partial operator update.
type OperatorUpdate struct {
	OperatorName *string `json:"operator_name,omitempty"`
	Address      *string `json:"address,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// OperatorService manages bus operator accounts.
type OperatorService interface {
	CreateOperator(input CreateOperatorInput) (*models.BusOperator, error)
	SearchOperators(f operatorRepo.Filter) ([]models.BusOperator, error)
	UpdateOperator(id string, updates OperatorUpdate) (*models.BusOperator, error)
	DeleteOperator(id string) error
}

// DefaultOperatorService is the production operator service.
type DefaultOperatorService struct {
	Repo     operatorRepo.OperatorRepository
	UserRepo userRepo.UserRepository
}

// CreateOperator validates the backing user (must exist, must hold the
// bus_operator role, must not already back another operator) and creates the
// account. All violations are collected and returned together.
func (s *DefaultOperatorService) CreateOperator(input CreateOperatorInput) (*models.BusOperator, error) {
	var errs []string
	name := strings.TrimSpace(input.OperatorName)
	if len(name) < 3 {
		errs = append(errs, "Operator name must be a valid string with at least 3 characters.")
	}
	if input.UserID == "" || uuid.Validate(input.UserID) != nil {
		errs = append(errs, "User ID must be a valid UUID.")
	} else {
		usr, err := s.UserRepo.GetByID(input.UserID)
		if err != nil {
			errs = append(errs, "User ID does not exist.")
		} else if usr.Role != models.RoleBusOperator {
			errs = append(errs, "User is not authorized as a bus operator.")
		} else {
			existing, err := s.Repo.GetByUserID(input.UserID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				errs = append(errs, "This user ID is already associated with another bus operator.")
			}
		}
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	o := &models.BusOperator{
		ID:           uuid.New().String(),
		OperatorName: name,
		UserID:       input.UserID,
		Address:      strings.TrimSpace(input.Address),
		Status:       models.OperatorActive,
	}
	if err := s.Repo.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

// SearchOperators retrieves operators matching the filter. No matches is a
// not-found outcome per the API contract.
func (s *DefaultOperatorService) SearchOperators(f operatorRepo.Filter) ([]models.BusOperator, error) {
	operators, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(operators) == 0 {
		return nil, &utils.NotFoundError{Resource: "Bus operator"}
	}
	return operators, nil
}

// UpdateOperator applies a partial update with per-field validation.
func (s *DefaultOperatorService) UpdateOperator(id string, updates OperatorUpdate) (*models.BusOperator, error) {
	var errs []string
	set := bson.M{}

	if updates.OperatorName != nil {
		name := strings.TrimSpace(*updates.OperatorName)
		if len(name) < 3 {
			errs = append(errs, "Operator name must be a valid string with at least 3 characters.")
		} else {
			set["operator_name"] = name
		}
	}
	if updates.Address != nil {
		set["address"] = strings.TrimSpace(*updates.Address)
	}
	if updates.Status != nil {
		next := models.OperatorStatus(*updates.Status)
		if !next.Valid() {
			errs = append(errs, `Status must be either "active" or "inactive".`)
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

// DeleteOperator removes an operator account.
func (s *DefaultOperatorService) DeleteOperator(id string) error {
	return s.Repo.Delete(id)
}
