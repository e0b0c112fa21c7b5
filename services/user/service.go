// File: services/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nestview/models"
	"nestview/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Register creates an account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, utils.ValidationError("role must be agent or buyer")
	}

	if existing, err := s.Repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, utils.ValidationError("email already registered")
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("register: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	account := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	resp, err := s.issueToken(ctx, account)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user registered",
		zap.String("userId", account.ID),
		zap.String("role", string(account.Role)))
	return resp, nil
}

// Authenticate verifies credentials and signs the account in.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.UnauthorizedError("invalid email or password")
		}
		s.Logger.Error("authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, utils.UnauthorizedError("invalid email or password")
	}

	return s.issueToken(ctx, account)
}

// GetByID returns one account by id.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	account, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return account, nil
}

// issueToken signs a JWT for the account and caches its hash so the auth
// middleware can validate without a database round trip.
func (s *DefaultUserService) issueToken(ctx context.Context, account *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(models.Identity{ID: account.ID, Role: account.Role}, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + account.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		// Middleware falls back to a database lookup on cache miss.
		s.Logger.Warn("failed to cache auth token hash", zap.Error(err))
	}

	return &AuthResponse{Token: token, User: *account}, nil
}
