package usecase

import (
	"context"

	"manutencao_xpto/internal/domain/workflow"
	"manutencao_xpto/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

// notifyTransition fires the post-commit notification collaborator. The
// triggering operation has already committed, so failures here are logged
// and dropped.
func notifyTransition(ctx context.Context, n interfaces.ITransitionNotifier, kind workflow.Kind, id string, event workflow.Event, newStatus string) {
	if n == nil {
		return
	}
	if err := n.TransitionCommitted(ctx, kind, id, event, newStatus); err != nil {
		log.Warnf("[workflow][notify] dropped notification kind=%s id=%s event=%s: %v", kind, id, event, err)
	}
}
