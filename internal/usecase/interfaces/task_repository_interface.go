package interfaces

import (
	"context"
	"time"

	"manutencao_xpto/internal/domain/entities"
)

// ITaskRepository abstracts DynamoDB persistence for Task.
//
// UpdateStatus is the single guarded write for every task edge. startTime is
// written with if_not_exists semantics so a pause/restart loop never
// overwrites the first start; endTime is written verbatim when non-nil.

type ITaskRepository interface {
	Create(ctx context.Context, t entities.Task) (entities.Task, error)
	GetByID(ctx context.Context, id string) (entities.Task, error)
	ListByWorkOrderID(ctx context.Context, workOrderID string) ([]entities.Task, error)
	UpdateStatus(ctx context.Context, id string, expected, to entities.TaskStatus, startTime, endTime *time.Time) (entities.Task, error)
}
