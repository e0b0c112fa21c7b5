// File: database/repository/property/interface.go
package propertyRepo

import (
	"context"

	"nestview/database"
	"nestview/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PropertyRepository is durable storage for property listings.
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListAll(ctx context.Context) ([]models.PropertyWithAgent, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Property, error)
	Delete(ctx context.Context, id string) error
}

type mongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo constructs a new MongoDB PropertyRepository.
func NewMongoPropertyRepo() PropertyRepository {
	repo := &mongoPropertyRepo{
		coll: database.DB().Collection("properties"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to ensure property indexes", zap.Error(err))
	}
	return repo
}
