package models

import "time"

// OperatorStatus is the state of a bus operator account.
type OperatorStatus string

const (
	OperatorActive   OperatorStatus = "active"
	OperatorInactive OperatorStatus = "inactive"
)

func (s OperatorStatus) Valid() bool {
	return s == OperatorActive || s == OperatorInactive
}

// BusOperator is a company account backed by a user with the bus_operator
// role. A user backs at most one operator.
type BusOperator struct {
	ID           string         `bson:"id" json:"id"`
	OperatorName string         `bson:"operator_name" json:"operator_name"`
	UserID       string         `bson:"user_id" json:"user_id"`
	Address      string         `bson:"address,omitempty" json:"address,omitempty"`
	Status       OperatorStatus `bson:"status" json:"status"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}
