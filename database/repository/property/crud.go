// File: database/repository/property/crud.go
package propertyRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nestview/models"
)

func (r *mongoPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *mongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var property models.Property
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&property); err != nil {
		return nil, err
	}
	return &property, nil
}

// ListAll returns every listing with the owning agent's public details
// attached, newest first.
func (r *mongoPropertyRepo) ListAll(ctx context.Context) ([]models.PropertyWithAgent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "agentId",
			"foreignField": "id",
			"as":           "agent",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$agent", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"agent.passwordHash": 0,
			"agent.role":         0,
			"agent.createdAt":    0,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.PropertyWithAgent{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepo) ListByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"agentId": agentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
