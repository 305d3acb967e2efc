package schedule

import (
	"errors"
	"testing"
	"time"

	busRepo "busbook/database/repository/bus"
	routeRepo "busbook/database/repository/route"
	scheduleRepo "busbook/database/repository/schedule"
	"busbook/models"
	"busbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type memScheduleRepo struct {
	schedules map[string]*models.Schedule
}

func (r *memScheduleRepo) Create(s *models.Schedule) error {
	cp := *s
	r.schedules[s.ID] = &cp
	return nil
}

func (r *memScheduleRepo) GetByID(id string) (*models.Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Schedule"}
	}
	cp := *s
	return &cp, nil
}

func (r *memScheduleRepo) Search(scheduleRepo.Filter) ([]models.Schedule, error) { return nil, nil }

func (r *memScheduleRepo) Update(id string, set bson.M) (*models.Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Schedule"}
	}
	next := *s
	if v, ok := set["start_time"]; ok {
		next.StartTime = v.(time.Time)
	}
	if v, ok := set["end_time"]; ok {
		next.EndTime = v.(time.Time)
	}
	if v, ok := set["status"]; ok {
		next.Status = models.ScheduleStatus(v.(string))
	}
	r.schedules[id] = &next
	cp := next
	return &cp, nil
}

func (r *memScheduleRepo) Delete(id string) error { delete(r.schedules, id); return nil }

type routeRepoStub struct{ routes map[string]*models.Route }

func (r *routeRepoStub) Create(rt *models.Route) error { r.routes[rt.ID] = rt; return nil }
func (r *routeRepoStub) GetByID(id string) (*models.Route, error) {
	rt, ok := r.routes[id]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "Route"}
	}
	return rt, nil
}
func (r *routeRepoStub) Search(routeRepo.Filter) ([]models.Route, error)     { return nil, nil }
func (r *routeRepoStub) Update(id string, set bson.M) (*models.Route, error) { return r.GetByID(id) }
func (r *routeRepoStub) Delete(id string) error                              { return nil }

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

func newScheduleService() (*DefaultScheduleService, string, string) {
	routeID := uuid.New().String()
	busID := uuid.New().String()
	svc := &DefaultScheduleService{
		Repo:      &memScheduleRepo{schedules: make(map[string]*models.Schedule)},
		RouteRepo: &routeRepoStub{routes: map[string]*models.Route{routeID: {ID: routeID}}},
		BusRepo:   &busRepoStub{buses: map[string]*models.Bus{busID: {ID: busID, SeatsCount: 40}}},
	}
	return svc, routeID, busID
}

func TestCreateScheduleRejectsInvertedWindow(t *testing.T) {
	svc, routeID, busID := newScheduleService()
	start := time.Now().Add(2 * time.Hour)
	_, err := svc.CreateSchedule(CreateScheduleInput{
		RouteID:   routeID,
		BusID:     busID,
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 1 || ve.Errors[0] != "End time must be after start time." {
		t.Fatalf("wrong violations: %v", ve.Errors)
	}
}

func TestCreateScheduleDefaultsActive(t *testing.T) {
	svc, routeID, busID := newScheduleService()
	start := time.Now().Add(2 * time.Hour)
	s, err := svc.CreateSchedule(CreateScheduleInput{
		RouteID:   routeID,
		BusID:     busID,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if s.Status != models.ScheduleActive {
		t.Errorf("status = %s, want active", s.Status)
	}
}

func TestUpdateScheduleWindowChecksStoredBounds(t *testing.T) {
	svc, routeID, busID := newScheduleService()
	start := time.Now().Add(2 * time.Hour)
	s, err := svc.CreateSchedule(CreateScheduleInput{
		RouteID:   routeID,
		BusID:     busID,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Moving the start past the stored end must fail even though only one
	// bound is supplied.
	badStart := start.Add(3 * time.Hour)
	_, err = svc.UpdateSchedule(s.ID, ScheduleUpdate{StartTime: &badStart})
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	goodEnd := start.Add(4 * time.Hour)
	updated, err := svc.UpdateSchedule(s.ID, ScheduleUpdate{EndTime: &goodEnd})
	if err != nil {
		t.Fatalf("valid update failed: %v", err)
	}
	if !updated.EndTime.Equal(goodEnd) {
		t.Errorf("end time not applied: %v", updated.EndTime)
	}
}
