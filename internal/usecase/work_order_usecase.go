package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/domain/workflow"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrInvalidWorkOrderID    = errors.New("invalid work order id")
	ErrInvalidWorkOrderInput = errors.New("invalid work order input")
)

type CreateWorkOrderInput struct {
	RequestID     string
	AssignedTo    string
	Title         string
	Description   string
	ScheduledDate time.Time
}

// IWorkOrderUseCase exposes work-order scheduling and lifecycle operations.
//
// AllTasksCompleted is the queryable flag callers consult before offering
// the completion transition; the core never flips a work order to completed
// on its own when the last task finishes.

type IWorkOrderUseCase interface {
	Create(ctx context.Context, actor entities.ActorContext, in CreateWorkOrderInput) (entities.WorkOrder, error)
	GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error)
	List(ctx context.Context, actor entities.ActorContext) ([]entities.WorkOrder, error)
	Start(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error)
	Complete(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error)
	ForceComplete(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error)
	AllTasksCompleted(ctx context.Context, actor entities.ActorContext, id string) (bool, error)
}

type WorkOrderUseCase struct {
	repo        interfaces.IWorkOrderRepository
	taskRepo    interfaces.ITaskRepository
	requestRepo interfaces.IRequestRepository
	notifier    interfaces.ITransitionNotifier
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(repo interfaces.IWorkOrderRepository, taskRepo interfaces.ITaskRepository, requestRepo interfaces.IRequestRepository, notifier interfaces.ITransitionNotifier) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, taskRepo: taskRepo, requestRepo: requestRepo, notifier: notifier}
}

func (u *WorkOrderUseCase) Create(ctx context.Context, actor entities.ActorContext, in CreateWorkOrderInput) (entities.WorkOrder, error) {
	if !actor.IsAdmin() {
		return entities.WorkOrder{}, fmt.Errorf("%w: only admins create work orders", workflow.ErrForbidden)
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		return entities.WorkOrder{}, fmt.Errorf("%w: assigned_to is required", ErrInvalidWorkOrderInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return entities.WorkOrder{}, fmt.Errorf("%w: title is required", ErrInvalidWorkOrderInput)
	}

	requestID := strings.TrimSpace(in.RequestID)
	if requestID != "" {
		req, err := u.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		if req.ID == "" {
			return entities.WorkOrder{}, ErrRequestNotFound
		}
		// Only a triaged, approved request may spawn scheduled work.
		if req.Status != entities.RequestStatusApproved {
			return entities.WorkOrder{}, fmt.Errorf("%w: request is %s, not approved", ErrInvalidWorkOrderInput, req.Status)
		}
	}

	now := time.Now().UTC()
	w := entities.WorkOrder{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AssignedTo:    strings.TrimSpace(in.AssignedTo),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		ScheduledDate: in.ScheduledDate,
		Status:        entities.WorkOrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return u.repo.Create(ctx, w)
}

func (u *WorkOrderUseCase) GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error) {
	w, err := u.load(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !actor.IsAdmin() && !actor.IsAssignedTechnician(w.AssignedTo) {
		return entities.WorkOrder{}, fmt.Errorf("%w: work order is not visible to this actor", workflow.ErrForbidden)
	}
	return w, nil
}

func (u *WorkOrderUseCase) List(ctx context.Context, actor entities.ActorContext) ([]entities.WorkOrder, error) {
	if actor.IsAdmin() {
		return u.repo.List(ctx)
	}
	if actor.Role == entities.RoleTechnician {
		return u.repo.ListByAssignedTo(ctx, actor.TechnicianID)
	}
	return nil, fmt.Errorf("%w: role %q may not list work orders", workflow.ErrForbidden, actor.Role)
}

func (u *WorkOrderUseCase) Start(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error) {
	return u.transition(ctx, actor, id, workflow.EventStart)
}

// Complete is the ordinary completion path, guarded by "all tasks
// completed". The guard failure is IncompleteTasks, distinct from an
// authorization or edge failure.
func (u *WorkOrderUseCase) Complete(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error) {
	return u.transition(ctx, actor, id, workflow.EventComplete)
}

// ForceComplete is the explicit admin escape hatch past the task guard. It
// is a distinct event, so the audit trail records that the guard was waived
// rather than satisfied.
func (u *WorkOrderUseCase) ForceComplete(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error) {
	return u.transition(ctx, actor, id, workflow.EventForceComplete)
}

func (u *WorkOrderUseCase) transition(ctx context.Context, actor entities.ActorContext, id string, event workflow.Event) (entities.WorkOrder, error) {
	w, err := u.load(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}

	to, err := workflow.Resolve(actor, workflow.KindWorkOrder, string(w.Status), event, workflow.Ownership{TechnicianID: w.AssignedTo})
	if err != nil {
		return entities.WorkOrder{}, err
	}

	if event == workflow.EventComplete {
		done, err := u.allTasksCompleted(ctx, w.ID)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		if !done {
			return entities.WorkOrder{}, workflow.ErrIncompleteTasks
		}
	}

	var completedDate *time.Time
	if entities.WorkOrderStatus(to) == entities.WorkOrderStatusCompleted {
		now := time.Now().UTC()
		completedDate = &now
	}

	updated, err := u.repo.UpdateStatus(ctx, w.ID, w.Status, entities.WorkOrderStatus(to), completedDate)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	log.Infof("[workorder][usecase] transition committed id=%s event=%s status=%s", w.ID, event, updated.Status)
	notifyTransition(ctx, u.notifier, workflow.KindWorkOrder, w.ID, event, string(updated.Status))
	return updated, nil
}

func (u *WorkOrderUseCase) AllTasksCompleted(ctx context.Context, actor entities.ActorContext, id string) (bool, error) {
	if _, err := u.GetByID(ctx, actor, id); err != nil {
		return false, err
	}
	return u.allTasksCompleted(ctx, id)
}

func (u *WorkOrderUseCase) allTasksCompleted(ctx context.Context, id string) (bool, error) {
	tasks, err := u.taskRepo.ListByWorkOrderID(ctx, id)
	if err != nil {
		return false, err
	}
	for _, t := range tasks {
		if t.Status != entities.TaskStatusCompleted {
			return false, nil
		}
	}
	return true, nil
}

func (u *WorkOrderUseCase) load(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}
	w, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if w.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return w, nil
}
