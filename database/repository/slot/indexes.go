// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on slot ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Property listing is always sorted by start time
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("property_start_idx"),
		},
		// Agent schedule filters on status
		{
			Keys:    bson.D{{Key: "agentId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("agent_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "buyerId", Value: 1}},
			Options: options.Index().SetName("buyer_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
