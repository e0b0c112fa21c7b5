// File: services/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"nestview/models"
	"nestview/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateSlot publishes a new available viewing window for a property. Only
// the owning agent may do so; the slot's agent reference is copied from the
// property owner, never from the request.
func (s *DefaultBookingService) CreateSlot(ctx context.Context, caller models.Identity, req models.CreateSlotRequest) (*models.Slot, error) {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, utils.ValidationError("startTime and endTime are required")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, utils.ValidationError("endTime must be after startTime")
	}

	property, err := s.PropertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("property not found")
		}
		return nil, fmt.Errorf("create slot: fetch property: %w", err)
	}
	if property.AgentID != caller.ID {
		return nil, utils.UnauthorizedError("not authorized")
	}

	slot := &models.Slot{
		PropertyID: property.ID,
		AgentID:    property.AgentID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     models.SlotAvailable,
	}
	if err := s.SlotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.Events.Publish(models.EventSlotsUpdated, models.SlotsUpdatedEvent{PropertyID: property.ID})
	s.Logger.Info("slot created",
		zap.String("slotId", slot.ID),
		zap.String("propertyId", property.ID),
		zap.String("agentId", property.AgentID))
	return slot, nil
}

// PropertySlots lists every slot for a property, sorted by start time.
func (s *DefaultBookingService) PropertySlots(ctx context.Context, propertyID string) ([]models.Slot, error) {
	slots, err := s.SlotRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list property slots: %w", err)
	}
	return slots, nil
}

// BookSlot transitions an available slot to pending for the calling buyer.
// The status check is re-applied atomically at the storage layer, so when
// two buyers race for the same slot exactly one wins; the loser observes
// the invalid-state failure.
func (s *DefaultBookingService) BookSlot(ctx context.Context, caller models.Identity, slotID string) (*models.Slot, error) {
	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("slot not found")
		}
		return nil, fmt.Errorf("book slot: fetch: %w", err)
	}

	if _, err := Transition(slot.Status, ActionBook); err != nil {
		return nil, err
	}

	booked, err := s.SlotRepo.Book(ctx, slotID, caller.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost the race: someone else moved the slot out of available
			// between the read and the conditional write.
			return nil, utils.InvalidStateError("slot not available")
		}
		return nil, fmt.Errorf("book slot: %w", err)
	}

	s.Events.Publish(models.EventSlotBooked, models.SlotBookedEvent{
		SlotID:     booked.ID,
		Status:     booked.Status,
		PropertyID: booked.PropertyID,
		AgentID:    booked.AgentID,
	})
	s.Logger.Info("slot booked",
		zap.String("slotId", booked.ID),
		zap.String("buyerId", caller.ID))
	return booked, nil
}

// UpdateStatus applies an agent's approve/reject decision. Only the agent
// owning the slot's property may call it. Rejection clears the buyer
// reference; the slot stays rejected, it does not return to available.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, caller models.Identity, slotID string, status models.SlotStatus) (*models.Slot, error) {
	action, err := actionForStatus(status)
	if err != nil {
		return nil, err
	}

	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("slot not found")
		}
		return nil, fmt.Errorf("update slot status: fetch: %w", err)
	}
	if slot.AgentID != caller.ID {
		return nil, utils.UnauthorizedError("not authorized")
	}

	next, err := Transition(slot.Status, action)
	if err != nil {
		return nil, err
	}

	updated, err := s.SlotRepo.UpdateStatus(ctx, slotID, next, next == models.SlotRejected)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("slot not found")
		}
		return nil, fmt.Errorf("update slot status: %w", err)
	}

	s.Events.Publish(models.EventSlotStatusChanged, models.SlotStatusChangedEvent{
		SlotID:     updated.ID,
		Status:     updated.Status,
		PropertyID: updated.PropertyID,
	})
	s.Logger.Info("slot status changed",
		zap.String("slotId", updated.ID),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// MyBookings returns the calling buyer's slots enriched with property and
// agent summaries.
func (s *DefaultBookingService) MyBookings(ctx context.Context, caller models.Identity) ([]models.SlotDetail, error) {
	details, err := s.SlotRepo.ListByBuyerDetailed(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list buyer bookings: %w", err)
	}
	return details, nil
}

// MySchedule returns the calling agent's non-available slots enriched with
// property and buyer summaries. Raw available slots are noise in the
// schedule view and are excluded.
func (s *DefaultBookingService) MySchedule(ctx context.Context, caller models.Identity) ([]models.SlotDetail, error) {
	details, err := s.SlotRepo.ListByAgentDetailed(ctx, caller.ID, models.SlotAvailable)
	if err != nil {
		return nil, fmt.Errorf("list agent schedule: %w", err)
	}
	return details, nil
}
