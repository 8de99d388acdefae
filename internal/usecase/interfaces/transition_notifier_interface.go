package interfaces

import (
	"context"

	"manutencao_xpto/internal/domain/workflow"
)

// ITransitionNotifier is an opaque post-commit collaborator (e.g. a pub/sub
// publisher feeding a notification service). Use cases invoke it only after
// a transition has committed and never depend on its success: a failed
// notification is logged and dropped, never rolled into the operation
// result.

type ITransitionNotifier interface {
	TransitionCommitted(ctx context.Context, kind workflow.Kind, entityID string, event workflow.Event, newStatus string) error
}
