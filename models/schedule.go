package models

import "time"

// ScheduleStatus is the operational state of a scheduled trip.
type ScheduleStatus string

const (
	ScheduleActive   ScheduleStatus = "active"
	ScheduleInactive ScheduleStatus = "inactive"
	ScheduleCanceled ScheduleStatus = "canceled"
	ScheduleFinished ScheduleStatus = "finished"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleActive, ScheduleInactive, ScheduleCanceled, ScheduleFinished:
		return true
	}
	return false
}

// Schedule is a trip of one bus on one route within a time window.
// The bus determines total seat capacity.
type Schedule struct {
	ID        string         `bson:"id" json:"id"`
	RouteID   string         `bson:"route_id" json:"route_id"`
	BusID     string         `bson:"bus_id" json:"bus_id"`
	StartTime time.Time      `bson:"start_time" json:"start_time"`
	EndTime   time.Time      `bson:"end_time" json:"end_time"`
	Status    ScheduleStatus `bson:"status" json:"status"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}
