// File: database/repository/slot/crud.go
package slotRepo

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

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Book transitions a slot to pending for the given buyer, but only if the
// stored status still reads available. A lost race or an already-taken slot
// surfaces as mongo.ErrNoDocuments.
func (r *mongoSlotRepo) Book(ctx context.Context, slotID, buyerID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     slotID,
		"status": models.SlotAvailable,
	}
	update := bson.M{
		"$set": bson.M{
			"status":  models.SlotPending,
			"buyerId": buyerID,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) UpdateStatus(ctx context.Context, slotID string, status models.SlotStatus, clearBuyer bool) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	if clearBuyer {
		update["$unset"] = bson.M{"buyerId": ""}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": slotID}, update, opts).Decode(&slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots for property %s: %w", propertyID, err)
	}
	return res.DeletedCount, nil
}

func decodeSlots(ctx context.Context, cursor *mongo.Cursor) ([]models.Slot, error) {
	defer cursor.Close(ctx)
	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}
