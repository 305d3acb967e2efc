package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"busbook/database"
	"busbook/models"
	"busbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter narrows booking searches.
type Filter struct {
	UserID     string
	ScheduleID string
	Status     string
}

// BookingRepository persists seat bookings. Create and Update are atomic with
// respect to the seat-uniqueness invariant: the collection carries a unique
// index on (schedule_id, seat_number) scoped to non-canceled bookings, so a
// write that would double-book a seat fails with a ConflictError instead of
// committing.
type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	Search(f Filter) ([]models.Booking, error)
	Update(id string, set bson.M) (*models.Booking, error)
	Delete(id string) error
	IsSeatReserved(scheduleID string, seatNumber int) (bool, error)
	BookedSeats(scheduleID string) ([]int, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create booking indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func seatConflict(seat int) error {
	return &utils.ConflictError{
		Message: fmt.Sprintf("Seat number %d is already reserved for the selected schedule.", seat),
	}
}

// Create inserts a new booking document. The insert itself is the guard:
// a duplicate-key error from the partial unique index means the seat was
// taken, possibly by a concurrent request that won the race.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return seatConflict(b.SeatNumber)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Booking"}
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// Search retrieves bookings matching the filter.
func (r *MongoBookingRepo) Search(f Filter) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.UserID != "" {
		query["user_id"] = f.UserID
	}
	if f.ScheduleID != "" {
		query["schedule_id"] = f.ScheduleID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Update applies a partial $set to a booking and returns the updated record.
// A seat reassignment that collides with another active booking is rejected
// by the same unique index that guards Create.
func (r *MongoBookingRepo) Update(id string, set bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Booking"}
		}
		if mongo.IsDuplicateKeyError(err) {
			if seat, ok := set["seat_number"].(int); ok {
				return nil, seatConflict(seat)
			}
			return nil, &utils.ConflictError{Message: "Seat is already reserved for the selected schedule."}
		}
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	return &b, nil
}

// Delete removes a booking document. This is an administrative override; the
// normal flow cancels bookings instead.
func (r *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Booking"}
	}
	return nil
}

// IsSeatReserved reports whether a non-canceled booking holds the seat on the
// schedule. Read-only and idempotent; the write-side guard is the unique
// index, so this is advisory and used to enumerate conflicts in validation.
func (r *MongoBookingRepo) IsSeatReserved(scheduleID string, seatNumber int) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"schedule_id": scheduleID,
		"seat_number": seatNumber,
		"status":      bson.M{"$ne": string(models.BookingCanceled)},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check seat reservation: %w", err)
	}
	return count > 0, nil
}

// BookedSeats returns the seat numbers held by reserved or confirmed bookings
// on the schedule.
func (r *MongoBookingRepo) BookedSeats(scheduleID string) ([]int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"schedule_id": scheduleID,
		"status":      bson.M{"$in": models.ActiveBookingStatuses},
	}
	raw, err := r.coll.Distinct(ctx, "seat_number", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked seats: %w", err)
	}

	seats := make([]int, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case int32:
			seats = append(seats, int(n))
		case int64:
			seats = append(seats, int(n))
		case float64:
			seats = append(seats, int(n))
		}
	}
	return seats, nil
}
