package permitRepo

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

// Filter narrows permit searches.
type Filter struct {
	BusID      string
	OperatorID string
	RouteID    string
	Status     string
}

// PermitRepository persists route permits. The collection carries a unique
// index on bus_id scoped to approved permits, so approving a second permit
// for the same bus fails atomically with a ConflictError.
type PermitRepository interface {
	Create(p *models.Permit) error
	GetByID(id string) (*models.Permit, error)
	Search(f Filter) ([]models.Permit, error)
	UpdateStatus(id string, set bson.M) (*models.Permit, error)
	Delete(id string) error
}

// MongoPermitRepo implements PermitRepository using MongoDB.
type MongoPermitRepo struct {
	coll *mongo.Collection
}

// NewMongoPermitRepo creates a new PermitRepository backed by MongoDB.
func NewMongoPermitRepo() PermitRepository {
	repo := &MongoPermitRepo{coll: database.DB().Collection("permits")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create permit indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPermitRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// At most one approved permit per bus at any time.
		{
			Keys: bson.D{{Key: "bus_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("bus_approved_permit_unique").
				SetPartialFilterExpression(bson.M{
					"permit_status": string(models.PermitApproved),
				}),
		},
		{
			Keys:    bson.D{{Key: "operator_id", Value: 1}, {Key: "permit_status", Value: 1}},
			Options: options.Index().SetName("operator_status_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create permit indexes: %w", err)
	}
	return nil
}

// Create inserts a new permit document.
func (r *MongoPermitRepo) Create(p *models.Permit) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &utils.ConflictError{Message: "Another active permit already exists for this bus."}
		}
		return fmt.Errorf("failed to create permit: %w", err)
	}
	return nil
}

// GetByID retrieves a permit by its unique ID.
func (r *MongoPermitRepo) GetByID(id string) (*models.Permit, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Permit
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Permit"}
		}
		return nil, fmt.Errorf("failed to fetch permit with id %s: %w", id, err)
	}
	return &p, nil
}

// Search retrieves permits matching the filter.
func (r *MongoPermitRepo) Search(f Filter) ([]models.Permit, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.BusID != "" {
		query["bus_id"] = f.BusID
	}
	if f.OperatorID != "" {
		query["operator_id"] = f.OperatorID
	}
	if f.RouteID != "" {
		query["route_id"] = f.RouteID
	}
	if f.Status != "" {
		query["permit_status"] = f.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve permits: %w", err)
	}
	defer cursor.Close(ctx)

	var permits []models.Permit
	if err := cursor.All(ctx, &permits); err != nil {
		return nil, fmt.Errorf("failed to decode permits: %w", err)
	}
	return permits, nil
}

// UpdateStatus applies the status transition in a single conditional write.
// Entering approved while another approved permit exists for the same bus
// violates the partial unique index and surfaces as a ConflictError; the
// permit is left unchanged.
func (r *MongoPermitRepo) UpdateStatus(id string, set bson.M) (*models.Permit, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Permit
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Permit"}
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &utils.ConflictError{Message: "Another active permit already exists for this bus."}
		}
		return nil, fmt.Errorf("failed to update permit with id %s: %w", id, err)
	}
	return &p, nil
}

// Delete removes a permit document.
func (r *MongoPermitRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete permit with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Permit"}
	}
	return nil
}
