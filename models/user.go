package models

import "time"

// Role determines what a user may do.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCustomer    Role = "customer"
	RoleBusOperator Role = "bus_operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleBusOperator:
		return true
	}
	return false
}

// User is a platform account. PhoneNumber is the login identity and is unique
// across users; email is optional but unique where present.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	IsVerified   bool      `bson:"is_verified" json:"is_verified"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
