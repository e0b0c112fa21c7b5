// File: services/property/service.go
package property

import (
	"context"
	"errors"
	"fmt"

	"nestview/models"
	"nestview/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const imageFolder = "nestview/properties"

// List returns all listings with agent details, for the public directory.
func (s *DefaultPropertyService) List(ctx context.Context) ([]models.PropertyWithAgent, error) {
	properties, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

// ListByAgent returns the calling agent's own listings.
func (s *DefaultPropertyService) ListByAgent(ctx context.Context, caller models.Identity) ([]models.Property, error) {
	properties, err := s.Repo.ListByAgent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list agent properties: %w", err)
	}
	return properties, nil
}

// Get returns one listing by id.
func (s *DefaultPropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	property, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("property not found")
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return property, nil
}

// Create inserts a new listing owned by the calling agent. An attached
// image file is pushed to hosted storage; otherwise a raw image URL is
// stored as-is.
func (s *DefaultPropertyService) Create(ctx context.Context, caller models.Identity, input CreateInput) (*models.Property, error) {
	if input.Title == "" || input.Address == "" {
		return nil, utils.ValidationError("title and address are required")
	}
	if input.Price <= 0 {
		return nil, utils.ValidationError("price must be a positive number")
	}

	property := &models.Property{
		AgentID:     caller.ID,
		Title:       input.Title,
		Address:     input.Address,
		Description: input.Description,
		Price:       input.Price,
	}

	if input.ImageFilePath != "" {
		uploaded, err := s.Storage.UploadFile(ctx, input.ImageFilePath, imageFolder)
		if err != nil {
			return nil, fmt.Errorf("create property: upload image: %w", err)
		}
		property.Image = uploaded.URL
		property.ImagePublicID = uploaded.PublicID
	} else if input.ImageURL != "" {
		property.Image = input.ImageURL
	}

	if err := s.Repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.Logger.Info("property created",
		zap.String("propertyId", property.ID),
		zap.String("agentId", caller.ID))
	return property, nil
}

// Delete removes a listing and cascades deletion of every slot that
// references it, so no orphaned slots remain. Owner-only.
func (s *DefaultPropertyService) Delete(ctx context.Context, caller models.Identity, id string) error {
	property, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFoundError("property not found")
		}
		return fmt.Errorf("delete property: fetch: %w", err)
	}
	if property.AgentID != caller.ID {
		return utils.UnauthorizedError("not authorized")
	}

	// Slots first, so a failure mid-way never leaves slots pointing at a
	// property that no longer exists.
	deleted, err := s.SlotRepo.DeleteByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("delete property: cascade slots: %w", err)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFoundError("property not found")
		}
		return fmt.Errorf("delete property: %w", err)
	}

	if property.ImagePublicID != "" {
		if err := s.Storage.DeleteFile(ctx, property.ImagePublicID); err != nil {
			// The listing is already gone; an orphaned image is not worth
			// failing the request over.
			s.Logger.Warn("failed to delete property image",
				zap.String("propertyId", id), zap.Error(err))
		}
	}

	s.Logger.Info("property deleted",
		zap.String("propertyId", id),
		zap.Int64("slotsRemoved", deleted))
	return nil
}
