package route

import (
	"strings"

	routeRepo "busbook/database/repository/route"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateRouteInput is the request to register a route.
type CreateRouteInput struct {
	RouteNo    string `json:"route_no"`
	From       string `json:"from"`
	To         string `json:"to"`
	AvgMinutes int    `json:"avg_minutes"`
}

// RouteUpdate carries a partial route update.
type RouteUpdate struct {
	RouteNo    *string `json:"route_no,omitempty"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
	AvgMinutes *int    `json:"avg_minutes,omitempty"`
}

// RouteService manages service routes.
type RouteService interface {
	CreateRoute(input CreateRouteInput) (*models.Route, error)
	SearchRoutes(f routeRepo.Filter) ([]models.Route, error)
	UpdateRoute(id string, updates RouteUpdate) (*models.Route, error)
	DeleteRoute(id string) error
}

// DefaultRouteService is the production route service.
type DefaultRouteService struct {
	Repo routeRepo.RouteRepository
}

// CreateRoute validates the request and registers the route.
func (s *DefaultRouteService) CreateRoute(input CreateRouteInput) (*models.Route, error) {
	var errs []string
	if strings.TrimSpace(input.RouteNo) == "" {
		errs = append(errs, "Route number is required.")
	}
	if strings.TrimSpace(input.From) == "" {
		errs = append(errs, "Origin is required.")
	}
	if strings.TrimSpace(input.To) == "" {
		errs = append(errs, "Destination is required.")
	}
	if input.AvgMinutes <= 0 {
		errs = append(errs, "Average minutes must be a positive number.")
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	rt := &models.Route{
		ID:         uuid.New().String(),
		RouteNo:    strings.TrimSpace(input.RouteNo),
		From:       strings.TrimSpace(input.From),
		To:         strings.TrimSpace(input.To),
		AvgMinutes: input.AvgMinutes,
	}
	if err := s.Repo.Create(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// SearchRoutes retrieves routes matching the filter. No matches is a
// not-found outcome per the API contract.
func (s *DefaultRouteService) SearchRoutes(f routeRepo.Filter) ([]models.Route, error) {
	routes, err := s.Repo.Search(f)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, &utils.NotFoundError{Resource: "Route"}
	}
	return routes, nil
}

// UpdateRoute applies a partial update with per-field validation.
func (s *DefaultRouteService) UpdateRoute(id string, updates RouteUpdate) (*models.Route, error) {
	var errs []string
	set := bson.M{}

	if updates.RouteNo != nil {
		if strings.TrimSpace(*updates.RouteNo) == "" {
			errs = append(errs, "Route number is required.")
		} else {
			set["route_no"] = strings.TrimSpace(*updates.RouteNo)
		}
	}
	if updates.From != nil {
		if strings.TrimSpace(*updates.From) == "" {
			errs = append(errs, "Origin is required.")
		} else {
			set["from"] = strings.TrimSpace(*updates.From)
		}
	}
	if updates.To != nil {
		if strings.TrimSpace(*updates.To) == "" {
			errs = append(errs, "Destination is required.")
		} else {
			set["to"] = strings.TrimSpace(*updates.To)
		}
	}
	if updates.AvgMinutes != nil {
		if *updates.AvgMinutes <= 0 {
			errs = append(errs, "Average minutes must be a positive number.")
		} else {
			set["avg_minutes"] = *updates.AvgMinutes
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

// DeleteRoute removes a route.
func (s *DefaultRouteService) DeleteRoute(id string) error {
	return s.Repo.Delete(id)
}
