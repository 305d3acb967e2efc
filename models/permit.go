package models

import "time"

// PermitStatus is the regulatory approval state of a permit.
type PermitStatus string

const (
	PermitPending  PermitStatus = "pending"
	PermitApproved PermitStatus = "approved"
	PermitRejected PermitStatus = "rejected"
)

// Permit approval is not one-way: a rejected permit may later be approved and
// an approved one withdrawn back to pending or rejected.
var permitTransitions = map[PermitStatus][]PermitStatus{
	PermitPending:  {PermitApproved, PermitRejected},
	PermitApproved: {PermitPending, PermitRejected},
	PermitRejected: {PermitPending, PermitApproved},
}

func (s PermitStatus) Valid() bool {
	_, ok := permitTransitions[s]
	return ok
}

func (s PermitStatus) CanTransition(next PermitStatus) bool {
	if s == next {
		return true
	}
	for _, t := range permitTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Permit authorizes one bus to operate one route, subject to approval.
// At most one permit per bus may be approved at any time.
type Permit struct {
	ID            string       `bson:"id" json:"id"`
	BusID         string       `bson:"bus_id" json:"bus_id"`
	OperatorID    string       `bson:"operator_id" json:"operator_id"`
	RouteID       string       `bson:"route_id" json:"route_id"`
	PermitStatus  PermitStatus `bson:"permit_status" json:"permit_status"`
	StatusComment string       `bson:"status_comment,omitempty" json:"status_comment,omitempty"`
	ValidThrough  *time.Time   `bson:"valid_through,omitempty" json:"valid_through,omitempty"`
	ApprovedAt    *time.Time   `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	RejectedAt    *time.Time   `bson:"rejected_at,omitempty" json:"rejected_at,omitempty"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updated_at"`
}
