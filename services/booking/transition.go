// File: services/booking/transition.go
package booking

import (
	"fmt"

	"nestview/models"
	"nestview/utils"
)

// Action is a workflow request against a slot's lifecycle.
type Action string

const (
	ActionBook    Action = "book"    // buyer requests a viewing
	ActionApprove Action = "approve" // agent confirms a request
	ActionReject  Action = "reject"  // agent turns a request down
)

// Transition computes the next lifecycle state for an action applied to the
// current one.
//
// Booking is only valid from available; that is the check the storage layer
// re-applies atomically at write time. Approve and reject carry no
// current-state precondition: re-approving a confirmed slot or re-rejecting
// a rejected one is permitted and effectively a no-op. Rejected and
// confirmed are terminal for the booking action; a rejected slot does not
// become available again.
func Transition(current models.SlotStatus, action Action) (models.SlotStatus, error) {
	switch action {
	case ActionBook:
		if current != models.SlotAvailable {
			return "", utils.InvalidStateError("slot not available")
		}
		return models.SlotPending, nil
	case ActionApprove:
		return models.SlotConfirmed, nil
	case ActionReject:
		return models.SlotRejected, nil
	default:
		return "", fmt.Errorf("unknown slot action %q", action)
	}
}

// actionForStatus maps an agent's requested target status to its workflow
// action. Only confirmed and rejected are reachable this way.
func actionForStatus(status models.SlotStatus) (Action, error) {
	switch status {
	case models.SlotConfirmed:
		return ActionApprove, nil
	case models.SlotRejected:
		return ActionReject, nil
	default:
		return "", utils.ValidationError("status must be confirmed or rejected")
	}
}
