// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"nestview/database"
	"nestview/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SlotRepository is durable storage for viewing slots.
//
// Book is the only conditional write: the transition to pending is applied
// at the storage layer only if the stored status still reads available, so
// concurrent booking attempts cannot both succeed.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	ListByProperty(ctx context.Context, propertyID string) ([]models.Slot, error)
	ListByAgent(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.Slot, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Slot, error)
	Book(ctx context.Context, slotID, buyerID string) (*models.Slot, error)
	UpdateStatus(ctx context.Context, slotID string, status models.SlotStatus, clearBuyer bool) (*models.Slot, error)
	DeleteByProperty(ctx context.Context, propertyID string) (int64, error)

	ListByAgentDetailed(ctx context.Context, agentID string, excludeStatus models.SlotStatus) ([]models.SlotDetail, error)
	ListByBuyerDetailed(ctx context.Context, buyerID string) ([]models.SlotDetail, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	repo := &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to ensure slot indexes", zap.Error(err))
	}
	return repo
}
