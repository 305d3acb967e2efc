package busRepo

import (
	"context"
	"fmt"
	"time"

	"busbook/database"
	"busbook/models"
	"busbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter narrows bus searches. BusNumber matches case-insensitively as a
// partial string.
type Filter struct {
	OperatorID string
	BusNumber  string
	Status     string
}

// BusRepository persists buses. bus_number is unique across the fleet.
type BusRepository interface {
	Create(b *models.Bus) error
	GetByID(id string) (*models.Bus, error)
	Search(f Filter) ([]models.Bus, error)
	Update(id string, set bson.M) (*models.Bus, error)
	Delete(id string) error
}

// MongoBusRepo implements BusRepository using MongoDB.
type MongoBusRepo struct {
	coll *mongo.Collection
}

// NewMongoBusRepo creates a new BusRepository backed by MongoDB.
func NewMongoBusRepo() BusRepository {
	repo := &MongoBusRepo{coll: database.DB().Collection("buses")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create bus indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBusRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "bus_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_bus_number"),
		},
		{
			Keys:    bson.D{{Key: "operator_id", Value: 1}},
			Options: options.Index().SetName("operator_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create bus indexes: %w", err)
	}
	return nil
}

// Create inserts a new bus document.
func (r *MongoBusRepo) Create(b *models.Bus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &utils.ConflictError{Message: "Bus number is already in use."}
		}
		return fmt.Errorf("failed to create bus: %w", err)
	}
	return nil
}

// GetByID retrieves a bus by its unique ID.
func (r *MongoBusRepo) GetByID(id string) (*models.Bus, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Bus
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Bus"}
		}
		return nil, fmt.Errorf("failed to fetch bus with id %s: %w", id, err)
	}
	return &b, nil
}

// Search retrieves buses matching the filter.
func (r *MongoBusRepo) Search(f Filter) ([]models.Bus, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.OperatorID != "" {
		query["operator_id"] = f.OperatorID
	}
	if f.BusNumber != "" {
		query["bus_number"] = primitive.Regex{Pattern: f.BusNumber, Options: "i"}
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve buses: %w", err)
	}
	defer cursor.Close(ctx)

	var buses []models.Bus
	if err := cursor.All(ctx, &buses); err != nil {
		return nil, fmt.Errorf("failed to decode buses: %w", err)
	}
	return buses, nil
}

// Update applies a partial $set to a bus and returns the updated record.
func (r *MongoBusRepo) Update(id string, set bson.M) (*models.Bus, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Bus
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Bus"}
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &utils.ConflictError{Message: "Bus number is already in use."}
		}
		return nil, fmt.Errorf("failed to update bus with id %s: %w", id, err)
	}
	return &b, nil
}

// Delete removes a bus document.
func (r *MongoBusRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete bus with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Bus"}
	}
	return nil
}
