package interfaces

import (
	"context"
	"time"

	"manutencao_xpto/internal/domain/entities"
)

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// UpdateStatus commits only when the stored status still equals expected
// (workflow.ErrConcurrencyConflict otherwise); completedDate is written
// alongside the status when non-nil.

type IWorkOrderRepository interface {
	Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	List(ctx context.Context) ([]entities.WorkOrder, error)
	ListByAssignedTo(ctx context.Context, technicianID string) ([]entities.WorkOrder, error)
	UpdateStatus(ctx context.Context, id string, expected, to entities.WorkOrderStatus, completedDate *time.Time) (entities.WorkOrder, error)
}
