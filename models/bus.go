package models

import "time"

// BusStatus is the operational state of a bus.
type BusStatus string

const (
	BusActive           BusStatus = "active"
	BusInactive         BusStatus = "inactive"
	BusUnderMaintenance BusStatus = "under_maintenance"
)

func (s BusStatus) Valid() bool {
	switch s {
	case BusActive, BusInactive, BusUnderMaintenance:
		return true
	}
	return false
}

// Bus belongs to one operator. SeatsCount is the seat capacity used when
// computing availability for the bus's schedules.
type Bus struct {
	ID         string    `bson:"id" json:"id"`
	OperatorID string    `bson:"operator_id" json:"operator_id"`
	BusNumber  string    `bson:"bus_number" json:"bus_number"`
	SeatsCount int       `bson:"seats_count" json:"seats_count"`
	Status     BusStatus `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
