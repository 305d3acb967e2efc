package bookingRepo

import (
	"fmt"
	"time"

	"busbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes on the bookings collection. The partial
// unique index on (schedule_id, seat_number) is the seat-uniqueness
// invariant: it only covers bookings whose status still holds a seat, so a
// canceled booking frees its seat for rebooking.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "schedule_id", Value: 1}, {Key: "seat_number", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("schedule_seat_active_unique").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": models.ActiveBookingStatuses},
				}),
		},
		// Primary query pattern: bookings of a schedule filtered by status.
		{
			Keys:    bson.D{{Key: "schedule_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("schedule_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
