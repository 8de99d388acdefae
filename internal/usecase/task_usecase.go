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
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTaskID    = errors.New("invalid task id")
	ErrInvalidTaskInput = errors.New("invalid task input")
)

type CreateTaskInput struct {
	WorkOrderID   string
	Description   string
	EstimatedTime int
}

// ITaskUseCase exposes time-tracked task operations. Technician
// authorization is inherited from the parent work order's assignee.

type ITaskUseCase interface {
	Create(ctx context.Context, actor entities.ActorContext, in CreateTaskInput) (entities.Task, error)
	GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error)
	ListByWorkOrder(ctx context.Context, actor entities.ActorContext, workOrderID string) ([]entities.Task, error)
	Start(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error)
	Pause(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error)
	Complete(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error)
}

type TaskUseCase struct {
	repo          interfaces.ITaskRepository
	workOrderRepo interfaces.IWorkOrderRepository
	notifier      interfaces.ITransitionNotifier
}

var _ ITaskUseCase = (*TaskUseCase)(nil)

func NewTaskUseCase(repo interfaces.ITaskRepository, workOrderRepo interfaces.IWorkOrderRepository, notifier interfaces.ITransitionNotifier) *TaskUseCase {
	return &TaskUseCase{repo: repo, workOrderRepo: workOrderRepo, notifier: notifier}
}

func (u *TaskUseCase) Create(ctx context.Context, actor entities.ActorContext, in CreateTaskInput) (entities.Task, error) {
	if !actor.IsAdmin() {
		return entities.Task{}, fmt.Errorf("%w: only admins create tasks", workflow.ErrForbidden)
	}
	if strings.TrimSpace(in.Description) == "" {
		return entities.Task{}, fmt.Errorf("%w: description is required", ErrInvalidTaskInput)
	}
	if in.EstimatedTime < 0 {
		return entities.Task{}, fmt.Errorf("%w: estimated_time must be >= 0", ErrInvalidTaskInput)
	}

	w, err := u.loadWorkOrder(ctx, in.WorkOrderID)
	if err != nil {
		return entities.Task{}, err
	}
	if w.Status == entities.WorkOrderStatusCompleted {
		return entities.Task{}, fmt.Errorf("%w: work order is already completed", ErrInvalidTaskInput)
	}

	now := time.Now().UTC()
	t := entities.Task{
		ID:            uuid.NewString(),
		WorkOrderID:   w.ID,
		Description:   strings.TrimSpace(in.Description),
		EstimatedTime: in.EstimatedTime,
		Status:        entities.TaskStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return u.repo.Create(ctx, t)
}

func (u *TaskUseCase) GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error) {
	t, w, err := u.loadWithParent(ctx, id)
	if err != nil {
		return entities.Task{}, err
	}
	if !actor.IsAdmin() && !actor.IsAssignedTechnician(w.AssignedTo) {
		return entities.Task{}, fmt.Errorf("%w: task is not visible to this actor", workflow.ErrForbidden)
	}
	return t, nil
}

func (u *TaskUseCase) ListByWorkOrder(ctx context.Context, actor entities.ActorContext, workOrderID string) ([]entities.Task, error) {
	w, err := u.loadWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsAssignedTechnician(w.AssignedTo) {
		return nil, fmt.Errorf("%w: tasks are not visible to this actor", workflow.ErrForbidden)
	}
	return u.repo.ListByWorkOrderID(ctx, w.ID)
}

func (u *TaskUseCase) Start(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error) {
	return u.transition(ctx, actor, id, workflow.EventStart)
}

func (u *TaskUseCase) Pause(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error) {
	return u.transition(ctx, actor, id, workflow.EventPause)
}

func (u *TaskUseCase) Complete(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error) {
	return u.transition(ctx, actor, id, workflow.EventComplete)
}

// transition authorizes against the parent work order's assignee and
// commits with a status-conditioned update. The start edge records the
// first start time and only the first; the complete edge stamps the end
// time, which is necessarily >= the recorded start.
func (u *TaskUseCase) transition(ctx context.Context, actor entities.ActorContext, id string, event workflow.Event) (entities.Task, error) {
	t, w, err := u.loadWithParent(ctx, id)
	if err != nil {
		return entities.Task{}, err
	}

	to, err := workflow.Resolve(actor, workflow.KindTask, string(t.Status), event, workflow.Ownership{TechnicianID: w.AssignedTo})
	if err != nil {
		return entities.Task{}, err
	}

	var startTime, endTime *time.Time
	now := time.Now().UTC()
	switch event {
	case workflow.EventStart:
		startTime = &now
	case workflow.EventComplete:
		endTime = &now
	}

	updated, err := u.repo.UpdateStatus(ctx, t.ID, t.Status, entities.TaskStatus(to), startTime, endTime)
	if err != nil {
		return entities.Task{}, err
	}
	log.Infof("[task][usecase] transition committed id=%s event=%s status=%s", t.ID, event, updated.Status)
	notifyTransition(ctx, u.notifier, workflow.KindTask, t.ID, event, string(updated.Status))
	return updated, nil
}

func (u *TaskUseCase) loadWithParent(ctx context.Context, id string) (entities.Task, entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Task{}, entities.WorkOrder{}, ErrInvalidTaskID
	}
	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Task{}, entities.WorkOrder{}, err
	}
	if t.ID == "" {
		return entities.Task{}, entities.WorkOrder{}, ErrTaskNotFound
	}
	w, err := u.loadWorkOrder(ctx, t.WorkOrderID)
	if err != nil {
		return entities.Task{}, entities.WorkOrder{}, err
	}
	return t, w, nil
}

func (u *TaskUseCase) loadWorkOrder(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}
	w, err := u.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if w.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return w, nil
}
