// models/slot.go
package models

import "time"

// SlotStatus is the lifecycle state of a viewing slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPending   SlotStatus = "pending"
	SlotConfirmed SlotStatus = "confirmed"
	SlotRejected  SlotStatus = "rejected"
)

// Valid reports whether s is one of the known lifecycle states.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotPending, SlotConfirmed, SlotRejected:
		return true
	}
	return false
}

// Slot is a bookable viewing window on a property.
//
// AgentID is copied from the owning property at creation time. BuyerID is
// present only while the slot is pending or confirmed; rejection clears it.
type Slot struct {
	ID         string     `bson:"id" json:"id"`
	PropertyID string     `bson:"propertyId" json:"propertyId"`
	AgentID    string     `bson:"agentId" json:"agentId"`
	BuyerID    string     `bson:"buyerId,omitempty" json:"buyerId,omitempty"`
	StartTime  time.Time  `bson:"startTime" json:"startTime"`
	EndTime    time.Time  `bson:"endTime" json:"endTime"`
	Status     SlotStatus `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
}

// SlotDetail is a slot enriched with its property and, depending on the
// viewer, the counterpart user: buyers see the agent, agents see the buyer.
type SlotDetail struct {
	Slot     `bson:",inline"`
	Property *PropertySummary `bson:"property,omitempty" json:"property,omitempty"`
	Agent    *UserSummary     `bson:"agent,omitempty" json:"agent,omitempty"`
	Buyer    *UserSummary     `bson:"buyer,omitempty" json:"buyer,omitempty"`
}

// CreateSlotRequest is the payload for publishing a new viewing slot.
type CreateSlotRequest struct {
	PropertyID string    `json:"propertyId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

// UpdateSlotStatusRequest is the payload for an agent's approve/reject decision.
type UpdateSlotStatusRequest struct {
	Status SlotStatus `json:"status" binding:"required"`
}
