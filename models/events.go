// models/events.go
package models

// Broadcast event names. Connected clients filter by payload fields; the
// server performs no per-client routing.
const (
	EventSlotsUpdated      = "slotsUpdated"
	EventSlotBooked        = "slotBooked"
	EventSlotStatusChanged = "slotStatusChanged"
)

// SlotsUpdatedEvent fires when an agent publishes a new slot for a property.
type SlotsUpdatedEvent struct {
	PropertyID string `json:"propertyId"`
}

// SlotBookedEvent fires when a buyer requests a slot. AgentID is included so
// the agent-side listener can filter to its own bookings without a round trip.
type SlotBookedEvent struct {
	SlotID     string     `json:"slotId"`
	Status     SlotStatus `json:"status"`
	PropertyID string     `json:"propertyId"`
	AgentID    string     `json:"agentId"`
}

// SlotStatusChangedEvent fires when an agent confirms or rejects a request.
type SlotStatusChangedEvent struct {
	SlotID     string     `json:"slotId"`
	Status     SlotStatus `json:"status"`
	PropertyID string     `json:"propertyId"`
}
