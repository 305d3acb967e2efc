package scheduleRepo

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

// Filter narrows schedule searches.
type Filter struct {
	RouteID string
	BusID   string
	Status  string
}

// ScheduleRepository persists scheduled trips.
type ScheduleRepository interface {
	Create(s *models.Schedule) error
	GetByID(id string) (*models.Schedule, error)
	Search(f Filter) ([]models.Schedule, error)
	Update(id string, set bson.M) (*models.Schedule, error)
	Delete(id string) error
}

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo creates a new ScheduleRepository backed by MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	repo := &MongoScheduleRepo{coll: database.DB().Collection("schedules")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create schedule indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "route_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("route_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "bus_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("bus_start_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}

// Create inserts a new schedule document.
func (r *MongoScheduleRepo) Create(s *models.Schedule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule by its unique ID.
func (r *MongoScheduleRepo) GetByID(id string) (*models.Schedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.Schedule
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Schedule"}
		}
		return nil, fmt.Errorf("failed to fetch schedule with id %s: %w", id, err)
	}
	return &s, nil
}

// Search retrieves schedules matching the filter.
func (r *MongoScheduleRepo) Search(f Filter) ([]models.Schedule, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.RouteID != "" {
		query["route_id"] = f.RouteID
	}
	if f.BusID != "" {
		query["bus_id"] = f.BusID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return schedules, nil
}

// Update applies a partial $set to a schedule and returns the updated record.
func (r *MongoScheduleRepo) Update(id string, set bson.M) (*models.Schedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s models.Schedule
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Schedule"}
		}
		return nil, fmt.Errorf("failed to update schedule with id %s: %w", id, err)
	}
	return &s, nil
}

// Delete removes a schedule document.
func (r *MongoScheduleRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete schedule with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Schedule"}
	}
	return nil
}
