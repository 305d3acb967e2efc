package operatorRepo

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

// Filter narrows operator searches. OperatorName matches case-insensitively
// as a partial string.
type Filter struct {
	OperatorName string
	Status       string
}

// OperatorRepository persists bus operators. Each backing user may own at
// most one operator, enforced by a unique index on user_id.
type OperatorRepository interface {
	Create(o *models.BusOperator) error
	GetByID(id string) (*models.BusOperator, error)
	GetByUserID(userID string) (*models.BusOperator, error)
	Search(f Filter) ([]models.BusOperator, error)
	Update(id string, set bson.M) (*models.BusOperator, error)
	Delete(id string) error
}

// MongoOperatorRepo implements OperatorRepository using MongoDB.
type MongoOperatorRepo struct {
	coll *mongo.Collection
}

// NewMongoOperatorRepo creates a new OperatorRepository backed by MongoDB.
func NewMongoOperatorRepo() OperatorRepository {
	repo := &MongoOperatorRepo{coll: database.DB().Collection("bus_operators")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create operator indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOperatorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create operator indexes: %w", err)
	}
	return nil
}

// Create inserts a new operator document.
func (r *MongoOperatorRepo) Create(o *models.BusOperator) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &utils.ConflictError{Message: "This user ID is already associated with another bus operator."}
		}
		return fmt.Errorf("failed to create bus operator: %w", err)
	}
	return nil
}

// GetByID retrieves an operator by its unique ID.
func (r *MongoOperatorRepo) GetByID(id string) (*models.BusOperator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var o models.BusOperator
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Bus operator"}
		}
		return nil, fmt.Errorf("failed to fetch bus operator with id %s: %w", id, err)
	}
	return &o, nil
}

// GetByUserID retrieves the operator backed by the given user, or nil when
// no such operator exists.
func (r *MongoOperatorRepo) GetByUserID(userID string) (*models.BusOperator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var o models.BusOperator
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bus operator for user %s: %w", userID, err)
	}
	return &o, nil
}

// Search retrieves operators matching the filter.
func (r *MongoOperatorRepo) Search(f Filter) ([]models.BusOperator, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.OperatorName != "" {
		query["operator_name"] = primitive.Regex{Pattern: f.OperatorName, Options: "i"}
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bus operators: %w", err)
	}
	defer cursor.Close(ctx)

	var operators []models.BusOperator
	if err := cursor.All(ctx, &operators); err != nil {
		return nil, fmt.Errorf("failed to decode bus operators: %w", err)
	}
	return operators, nil
}

// Update applies a partial $set to an operator and returns the updated record.
func (r *MongoOperatorRepo) Update(id string, set bson.M) (*models.BusOperator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o models.BusOperator
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Bus operator"}
		}
		return nil, fmt.Errorf("failed to update bus operator with id %s: %w", id, err)
	}
	return &o, nil
}

// Delete removes an operator document.
func (r *MongoOperatorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete bus operator with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Bus operator"}
	}
	return nil
}
