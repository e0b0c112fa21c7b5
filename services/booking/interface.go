// File: services/booking/interface.go
package booking

import (
	"context"

	propertyRepo "nestview/database/repository/property"
	slotRepo "nestview/database/repository/slot"
	"nestview/models"
	"nestview/services/realtime"

	"go.uber.org/zap"
)

// BookingService is the only component allowed to mutate slot status. It
// encodes the lifecycle state machine and the ownership rules around it.
type BookingService interface {
	CreateSlot(ctx context.Context, caller models.Identity, req models.CreateSlotRequest) (*models.Slot, error)
	PropertySlots(ctx context.Context, propertyID string) ([]models.Slot, error)
	BookSlot(ctx context.Context, caller models.Identity, slotID string) (*models.Slot, error)
	UpdateStatus(ctx context.Context, caller models.Identity, slotID string, status models.SlotStatus) (*models.Slot, error)
	MyBookings(ctx context.Context, caller models.Identity) ([]models.SlotDetail, error)
	MySchedule(ctx context.Context, caller models.Identity) ([]models.SlotDetail, error)
}

// DefaultBookingService is the production implementation. Events is the
// injected broadcast capability; tests substitute a recording publisher.
type DefaultBookingService struct {
	SlotRepo     slotRepo.SlotRepository
	PropertyRepo propertyRepo.PropertyRepository
	Events       realtime.Publisher
	Logger       *zap.Logger
}
