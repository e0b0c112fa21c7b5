// File: services/property/interface.go
package property

import (
	"context"

	propertyRepo "nestview/database/repository/property"
	slotRepo "nestview/database/repository/slot"
	"nestview/models"
	"nestview/services/storage"

	"go.uber.org/zap"
)

// CreateInput carries a new listing. ImageFilePath points at an uploaded
// temp file to be pushed to hosted storage; ImageURL is the raw-URL
// fallback when no file was attached. At most one of the two is used.
type CreateInput struct {
	Title         string
	Address       string
	Description   string
	Price         float64
	ImageFilePath string
	ImageURL      string
}

// PropertyService is listing CRUD plus the slot cascade on deletion.
type PropertyService interface {
	List(ctx context.Context) ([]models.PropertyWithAgent, error)
	ListByAgent(ctx context.Context, caller models.Identity) ([]models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, caller models.Identity, input CreateInput) (*models.Property, error)
	Delete(ctx context.Context, caller models.Identity, id string) error
}

// DefaultPropertyService is the production implementation.
type DefaultPropertyService struct {
	Repo     propertyRepo.PropertyRepository
	SlotRepo slotRepo.SlotRepository
	Storage  storage.StorageService
	Logger   *zap.Logger
}
