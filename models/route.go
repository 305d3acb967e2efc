package models

import "time"

// Route is a named origin-to-destination service line.
type Route struct {
	ID         string    `bson:"id" json:"id"`
	RouteNo    string    `bson:"route_no" json:"route_no"`
	From       string    `bson:"from" json:"from"`
	To         string    `bson:"to" json:"to"`
	AvgMinutes int       `bson:"avg_minutes" json:"avg_minutes"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
