package workflow

import (
	"fmt"

	"manutencao_xpto/internal/domain/entities"
)

// Ownership carries the entity-side identities a guard may need: the billing
// client for client-owned entities, the assigned technician for work orders
// and their tasks (tasks inherit the assignee of the parent work order).
type Ownership struct {
	ClientID     string
	TechnicianID string
}

// Authorize is the per-transition authorization guard.
//
// Rules:
//   - admin may trigger every event on every kind;
//   - technician may drive start/pause/complete on work orders and tasks it
//     is assigned to, nothing else;
//   - client may never transition status (clients create and view; status
//     changes are admin-only).
//
// It returns nil or a wrapped ErrForbidden with the rejection reason. It
// never mutates state.
func Authorize(actor entities.ActorContext, kind Kind, event Event, own Ownership) error {
	if !actor.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrForbidden, actor.Role)
	}
	if actor.IsAdmin() {
		return nil
	}

	switch event {
	case EventStart, EventPause, EventComplete:
		if kind != KindWorkOrder && kind != KindTask {
			break
		}
		if actor.IsAssignedTechnician(own.TechnicianID) {
			return nil
		}
		if actor.Role == entities.RoleTechnician {
			return fmt.Errorf("%w: technician is not assigned to this %s", ErrForbidden, kind)
		}
	case EventApprove, EventReject:
		if actor.OwnsClient(own.ClientID) {
			return fmt.Errorf("%w: status changes on own %s require an admin", ErrForbidden, kind)
		}
	case EventForceComplete:
		return fmt.Errorf("%w: force-completing a %s requires an admin", ErrForbidden, kind)
	}

	return fmt.Errorf("%w: role %q may not %q a %s", ErrForbidden, actor.Role, event, kind)
}
