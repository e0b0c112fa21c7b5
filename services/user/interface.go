// File: services/user/interface.go
package user

import (
	"context"

	userRepo "nestview/database/repository/user"
	"nestview/models"

	"go.uber.org/zap"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// AuthResponse carries a signed token and the account it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UserService issues identities. The booking and property services never see
// it; they only consume the models.Identity the auth middleware extracts.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
