// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nestview/models"
)

func (r *mongoSlotRepo) ListByProperty(ctx context.Context, propertyID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for property: %w", err)
	}
	return decodeSlots(ctx, cursor)
}

func (r *mongoSlotRepo) ListByAgent(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"agentId": agentID}
	if excludeStatus != "" {
		filter["status"] = bson.M{"$ne": excludeStatus}
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for agent: %w", err)
	}
	return decodeSlots(ctx, cursor)
}

func (r *mongoSlotRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"buyerId": buyerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for buyer: %w", err)
	}
	return decodeSlots(ctx, cursor)
}

// detailPipeline joins the property and counterpart-user documents onto each
// slot matched by filter. userField is the slot field to resolve ("buyerId"
// or "agentId"), as is the output field the summary lands in.
func detailPipeline(filter bson.M, userField, as string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "startTime", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "propertyId",
			"foreignField": "id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$property", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   userField,
			"foreignField": "id",
			"as":           as,
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$" + as, "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			as + ".passwordHash": 0,
			as + ".role":         0,
			as + ".createdAt":    0,
		}}},
	}
}

func (r *mongoSlotRepo) ListByAgentDetailed(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.SlotDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"agentId": agentID}
	if excludeStatus != "" {
		filter["status"] = bson.M{"$ne": excludeStatus}
	}
	cursor, err := r.coll.Aggregate(ctx, detailPipeline(filter, "buyerId", "buyer"))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate agent schedule: %w", err)
	}
	return decodeSlotDetails(ctx, cursor)
}

func (r *mongoSlotRepo) ListByBuyerDetailed(ctx context.Context, buyerID string) ([]models.SlotDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, detailPipeline(bson.M{"buyerId": buyerID}, "agentId", "agent"))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate buyer bookings: %w", err)
	}
	return decodeSlotDetails(ctx, cursor)
}

func decodeSlotDetails(ctx context.Context, cursor *mongo.Cursor) ([]models.SlotDetail, error) {
	defer cursor.Close(ctx)
	details := []models.SlotDetail{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("error decoding slot details: %w", err)
	}
	return details, nil
}
