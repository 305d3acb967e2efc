package routeRepo

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

// Filter narrows route searches.
type Filter struct {
	RouteNo string
	From    string
	To      string
}

// RouteRepository persists service routes. route_no is unique.
type RouteRepository interface {
	Create(rt *models.Route) error
	GetByID(id string) (*models.Route, error)
	Search(f Filter) ([]models.Route, error)
	Update(id string, set bson.M) (*models.Route, error)
	Delete(id string) error
}

// MongoRouteRepo implements RouteRepository using MongoDB.
type MongoRouteRepo struct {
	coll *mongo.Collection
}

// NewMongoRouteRepo creates a new RouteRepository backed by MongoDB.
func NewMongoRouteRepo() RouteRepository {
	repo := &MongoRouteRepo{coll: database.DB().Collection("routes")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to create route indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRouteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "route_no", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_route_no"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create route indexes: %w", err)
	}
	return nil
}

// Create inserts a new route document.
func (r *MongoRouteRepo) Create(rt *models.Route) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rt.CreatedAt = now
	rt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, rt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &utils.ConflictError{Message: "Route number is already in use."}
		}
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// GetByID retrieves a route by its unique ID.
func (r *MongoRouteRepo) GetByID(id string) (*models.Route, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rt models.Route
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Route"}
		}
		return nil, fmt.Errorf("failed to fetch route with id %s: %w", id, err)
	}
	return &rt, nil
}

// Search retrieves routes matching the filter.
func (r *MongoRouteRepo) Search(f Filter) ([]models.Route, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.RouteNo != "" {
		query["route_no"] = f.RouteNo
	}
	if f.From != "" {
		query["from"] = primitive.Regex{Pattern: f.From, Options: "i"}
	}
	if f.To != "" {
		query["to"] = primitive.Regex{Pattern: f.To, Options: "i"}
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []models.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, nil
}

// Update applies a partial $set to a route and returns the updated record.
func (r *MongoRouteRepo) Update(id string, set bson.M) (*models.Route, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rt models.Route
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&rt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &utils.NotFoundError{Resource: "Route"}
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &utils.ConflictError{Message: "Route number is already in use."}
		}
		return nil, fmt.Errorf("failed to update route with id %s: %w", id, err)
	}
	return &rt, nil
}

// Delete removes a route document.
func (r *MongoRouteRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete route with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &utils.NotFoundError{Resource: "Route"}
	}
	return nil
}
