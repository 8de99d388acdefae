package interfaces

import (
	"context"

	"manutencao_xpto/internal/domain/entities"
)

// IRequestRepository abstracts DynamoDB persistence for Request.
//
// Not-found reads return a zero entity and a nil error; callers branch on
// the empty ID. UpdateStatus is a guarded write: it only commits when the
// stored status still equals expected, and reports a lost race with
// workflow.ErrConcurrencyConflict.

type IRequestRepository interface {
	Create(ctx context.Context, r entities.Request) (entities.Request, error)
	GetByID(ctx context.Context, id string) (entities.Request, error)
	List(ctx context.Context) ([]entities.Request, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Request, error)
	UpdateStatus(ctx context.Context, id string, expected, to entities.RequestStatus) (entities.Request, error)
	AppendAttachment(ctx context.Context, id, objectName string) (entities.Request, error)
	Delete(ctx context.Context, id string) error
}
