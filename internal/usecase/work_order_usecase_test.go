package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/domain/workflow"
	mock_interfaces "manutencao_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var (
	woAdmin = entities.ActorContext{UserID: "u-admin", Role: entities.RoleAdmin}
	woTech  = entities.ActorContext{UserID: "u-tech", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
)

func TestWorkOrderUseCase_Create(t *testing.T) {
	t.Run("only admins create", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil, nil)
		_, err := uc.Create(context.Background(), woTech, CreateWorkOrderInput{AssignedTo: "tech-1", Title: "Fix leak"})
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("assigned_to is required", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil, nil)
		_, err := uc.Create(context.Background(), woAdmin, CreateWorkOrderInput{Title: "Fix leak"})
		if !errors.Is(err, ErrInvalidWorkOrderInput) {
			t.Fatalf("expected ErrInvalidWorkOrderInput, got %v", err)
		}
	})

	t.Run("linked request must be approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewWorkOrderUseCase(nil, nil, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", Status: entities.RequestStatusPending}, nil)

		_, err := uc.Create(context.Background(), woAdmin, CreateWorkOrderInput{
			RequestID:  "req-1",
			AssignedTo: "tech-1",
			Title:      "Fix leak",
		})
		if !errors.Is(err, ErrInvalidWorkOrderInput) {
			t.Fatalf("expected ErrInvalidWorkOrderInput, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", Status: entities.RequestStatusApproved}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
				if w.Status != entities.WorkOrderStatusPending {
					t.Fatalf("expected pending, got %s", w.Status)
				}
				return w, nil
			})

		w, err := uc.Create(context.Background(), woAdmin, CreateWorkOrderInput{
			RequestID:     "req-1",
			AssignedTo:    "tech-1",
			Title:         "Fix leak",
			ScheduledDate: time.Now().Add(24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.ID == "" {
			t.Fatal("expected generated id")
		}
	})
}

func TestWorkOrderUseCase_Complete(t *testing.T) {
	inProgress := entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusInProgress}

	t.Run("incomplete tasks block completion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		taskRepo := mock_interfaces.NewMockITaskRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, taskRepo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(inProgress, nil)
		taskRepo.EXPECT().ListByWorkOrderID(gomock.Any(), "wo-1").Return([]entities.Task{
			{ID: "t-1", Status: entities.TaskStatusCompleted},
			{ID: "t-2", Status: entities.TaskStatusInProgress},
		}, nil)

		_, err := uc.Complete(context.Background(), woAdmin, "wo-1")
		if !errors.Is(err, workflow.ErrIncompleteTasks) {
			t.Fatalf("expected ErrIncompleteTasks, got %v", err)
		}
	})

	t.Run("all tasks completed allows completion and stamps completed date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		taskRepo := mock_interfaces.NewMockITaskRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, taskRepo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(inProgress, nil)
		taskRepo.EXPECT().ListByWorkOrderID(gomock.Any(), "wo-1").Return([]entities.Task{
			{ID: "t-1", Status: entities.TaskStatusCompleted},
		}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCompleted, gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, id string, _, to entities.WorkOrderStatus, completedDate *time.Time) (entities.WorkOrder, error) {
				done := inProgress
				done.Status = to
				done.CompletedDate = completedDate
				return done, nil
			})

		w, err := uc.Complete(context.Background(), woTech, "wo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.CompletedDate == nil {
			t.Fatal("expected completed date")
		}
	})

	t.Run("work order with no tasks completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		taskRepo := mock_interfaces.NewMockITaskRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, taskRepo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(inProgress, nil)
		taskRepo.EXPECT().ListByWorkOrderID(gomock.Any(), "wo-1").Return(nil, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCompleted, gomock.Any()).
			Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCompleted}, nil)

		if _, err := uc.Complete(context.Background(), woAdmin, "wo-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unassigned technician is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		other := inProgress
		other.AssignedTo = "tech-9"
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(other, nil)

		_, err := uc.Complete(context.Background(), woTech, "wo-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_ForceComplete(t *testing.T) {
	inProgress := entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusInProgress}

	t.Run("admin bypasses the task guard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		taskRepo := mock_interfaces.NewMockITaskRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, taskRepo, nil, nil)

		// The task guard is never consulted on the force path.
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(inProgress, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCompleted, gomock.Any()).
			Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCompleted}, nil)

		w, err := uc.ForceComplete(context.Background(), woAdmin, "wo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Status != entities.WorkOrderStatusCompleted {
			t.Fatalf("expected completed, got %s", w.Status)
		}
	})

	t.Run("assigned technician may not force complete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(inProgress, nil)

		_, err := uc.ForceComplete(context.Background(), woTech, "wo-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("force completing a pending work order is illegal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").
			Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusPending}, nil)

		_, err := uc.ForceComplete(context.Background(), woAdmin, "wo-1")
		if !errors.Is(err, workflow.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_Start(t *testing.T) {
	t.Run("assigned technician starts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		pending := entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusPending}
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusPending, entities.WorkOrderStatusInProgress, gomock.Nil()).
			Return(entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusInProgress}, nil)

		w, err := uc.Start(context.Background(), woTech, "wo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Status != entities.WorkOrderStatusInProgress {
			t.Fatalf("expected in_progress, got %s", w.Status)
		}
	})

	t.Run("lost race surfaces as concurrency conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil)

		pending := entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusPending}
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "wo-1", entities.WorkOrderStatusPending, entities.WorkOrderStatusInProgress, gomock.Nil()).
			Return(entities.WorkOrder{}, workflow.ErrConcurrencyConflict)

		_, err := uc.Start(context.Background(), woAdmin, "wo-1")
		if !errors.Is(err, workflow.ErrConcurrencyConflict) {
			t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_AllTasksCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	taskRepo := mock_interfaces.NewMockITaskRepository(ctrl)
	uc := NewWorkOrderUseCase(repo, taskRepo, nil, nil)

	repo.EXPECT().GetByID(gomock.Any(), "wo-1").
		Return(entities.WorkOrder{ID: "wo-1", AssignedTo: "tech-1", Status: entities.WorkOrderStatusInProgress}, nil)
	taskRepo.EXPECT().ListByWorkOrderID(gomock.Any(), "wo-1").Return([]entities.Task{
		{ID: "t-1", Status: entities.TaskStatusCompleted},
		{ID: "t-2", Status: entities.TaskStatusPending},
	}, nil)

	done, err := uc.AllTasksCompleted(context.Background(), woTech, "wo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Fatal("expected false with a pending task")
	}
}
