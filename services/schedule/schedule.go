package schedule

import (
	"time"

	busRepo "busbook/database/repository/bus"
	routeRepo "busbook/database/repository/route"
	scheduleRepo "busbook/database/repository/schedule"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateScheduleInput is the request to schedule a trip.
type CreateScheduleInput struct {
	RouteID   string    `json:"route_id"`
	BusID     string    `json:"bus_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status,omitempty"`
}

// ScheduleUpdate carries a partial schedule update.
type ScheduleUpdate struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    *string    `json:"status,omitempty"`
}

// ScheduleService manages scheduled trips.
type ScheduleService interface {
	CreateSchedule(input CreateScheduleInput) (*models.Schedule, error)
	ListSchedules(f scheduleRepo.Filter) ([]models.Schedule, error)
	UpdateSchedule(id string, updates ScheduleUpdate) (*models.Schedule, error)
	DeleteSchedule(id string) error
}

// DefaultScheduleService is the production schedule service.
type DefaultScheduleService struct {
	Repo      scheduleRepo.ScheduleRepository
	RouteRepo routeRepo.RouteRepository
	BusRepo   busRepo.BusRepository
}

// CreateSchedule validates references and the time window, then creates the
// trip. All violations are collected and returned together.
func (s *DefaultScheduleService) CreateSchedule(input CreateScheduleInput) (*models.Schedule, error) {
	var errs []string
	if input.RouteID == "" {
		errs = append(errs, "Route ID is required.")
	} else if _, err := s.RouteRepo.GetByID(input.RouteID); err != nil {
		errs = append(errs, "Route not found.")
	}
	if input.BusID == "" {
		errs = append(errs, "Bus ID is required.")
	} else if _, err := s.BusRepo.GetByID(input.BusID); err != nil {
		errs = append(errs, "Bus not found.")
	}
	if input.StartTime.IsZero() {
		errs = append(errs, "Start time must be a valid date.")
	}
	if input.EndTime.IsZero() {
		errs = append(errs, "End time must be a valid date.")
	}
	if !input.StartTime.IsZero() && !input.EndTime.IsZero() && !input.StartTime.Before(input.EndTime) {
		errs = append(errs, "End time must be after start time.")
	}

	status := models.ScheduleActive
	if input.Status != "" {
		status = models.ScheduleStatus(input.Status)
		if !status.Valid() {
			errs = append(errs, "Invalid schedule status.")
		}
	}
	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs...)
	}

	sched := &models.Schedule{
		ID:        uuid.New().String(),
		RouteID:   input.RouteID,
		BusID:     input.BusID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    status,
	}
	if err := s.Repo.Create(sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// ListSchedules retrieves schedules matching the filter.
func (s *DefaultScheduleService) ListSchedules(f scheduleRepo.Filter) ([]models.Schedule, error) {
	return s.Repo.Search(f)
}

// UpdateSchedule applies a partial update, re-validating the time window
// against the stored values for whichever bound is not supplied.
func (s *DefaultScheduleService) UpdateSchedule(id string, updates ScheduleUpdate) (*models.Schedule, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	start := current.StartTime
	end := current.EndTime
	var errs []string
	set := bson.M{}

	if updates.StartTime != nil {
		if updates.StartTime.IsZero() {
			errs = append(errs, "Start time must be a valid date.")
		} else {
			start = *updates.StartTime
			set["start_time"] = start
		}
	}
	if updates.EndTime != nil {
		if updates.EndTime.IsZero() {
			errs = append(errs, "End time must be a valid date.")
		} else {
			end = *updates.EndTime
			set["end_time"] = end
		}
	}
	if !start.Before(end) {
		errs = append(errs, "End time must be after start time.")
	}
	if updates.Status != nil {
		next := models.ScheduleStatus(*updates.Status)
		if !next.Valid() {
			errs = append(errs, "Invalid schedule status.")
		} else {
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

// DeleteSchedule removes a schedule.
func (s *DefaultScheduleService) DeleteSchedule(id string) error {
	return s.Repo.Delete(id)
}
