package booking

import (
	"sort"

	"busbook/models"
)

// GetAvailableSeats computes the seat map for a schedule: the full range
// [1..seats_count] of the schedule's bus minus the seats held by reserved or
// confirmed bookings. A fully booked schedule returns an empty available
// list, which is a valid result, not an error. Capacity is recomputed on
// demand; nothing is cached.
func (s *DefaultBookingService) GetAvailableSeats(scheduleID string) (*models.SeatAvailability, error) {
	sched, err := s.ScheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	bus, err := s.BusRepo.GetByID(sched.BusID)
	if err != nil {
		return nil, err
	}

	booked, err := s.Repo.BookedSeats(scheduleID)
	if err != nil {
		return nil, err
	}
	sort.Ints(booked)

	taken := make(map[int]bool, len(booked))
	for _, n := range booked {
		taken[n] = true
	}

	available := make([]int, 0, bus.SeatsCount)
	for n := 1; n <= bus.SeatsCount; n++ {
		if !taken[n] {
			available = append(available, n)
		}
	}

	return &models.SeatAvailability{
		ScheduleID: scheduleID,
		TotalSeats: bus.SeatsCount,
		Booked:     booked,
		Available:  available,
	}, nil
}
