// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"nestview/database"
	"nestview/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserRepository is durable storage for agent and buyer accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	repo := &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		zap.L().Warn("failed to ensure user indexes", zap.Error(err))
	}
	return repo
}
