package usecase

import (
	"context"
	"errors"
	"testing"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/domain/workflow"
	mock_interfaces "manutencao_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var (
	reqAdmin  = entities.ActorContext{UserID: "u-admin", Role: entities.RoleAdmin}
	reqClient = entities.ActorContext{UserID: "u-client", Role: entities.RoleClient, ClientID: "client-1"}
)

func TestRequestUseCase_Create(t *testing.T) {
	t.Run("technician may not create", func(t *testing.T) {
		uc := NewRequestUseCase(nil, nil, nil)
		tech := entities.ActorContext{UserID: "u-t", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
		_, err := uc.Create(context.Background(), tech, CreateRequestInput{Title: "Leaking tap", ServiceType: entities.ServiceTypePlumbing})
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin must name a client", func(t *testing.T) {
		uc := NewRequestUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), reqAdmin, CreateRequestInput{Title: "Leaking tap", ServiceType: entities.ServiceTypePlumbing})
		if !errors.Is(err, ErrInvalidRequestInput) {
			t.Fatalf("expected ErrInvalidRequestInput, got %v", err)
		}
	})

	t.Run("unknown service type", func(t *testing.T) {
		uc := NewRequestUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), reqClient, CreateRequestInput{Title: "Leaking tap", ServiceType: "gardening"})
		if !errors.Is(err, ErrInvalidRequestInput) {
			t.Fatalf("expected ErrInvalidRequestInput, got %v", err)
		}
	})

	t.Run("client always creates for itself", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r entities.Request) (entities.Request, error) {
				if r.ClientID != "client-1" {
					t.Fatalf("expected client-1, got %q", r.ClientID)
				}
				if r.Status != entities.RequestStatusPending {
					t.Fatalf("expected pending, got %s", r.Status)
				}
				if r.Priority != entities.PriorityMedium {
					t.Fatalf("expected defaulted medium priority, got %s", r.Priority)
				}
				return r, nil
			})

		_, err := uc.Create(context.Background(), reqClient, CreateRequestInput{
			ClientID:    "client-9",
			Title:       "Leaking tap",
			Location:    "Apt 12",
			ServiceType: entities.ServiceTypePlumbing,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRequestUseCase_Transitions(t *testing.T) {
	pending := entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusPending}

	t.Run("admin approves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		approved := pending
		approved.Status = entities.RequestStatusApproved
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "req-1", entities.RequestStatusPending, entities.RequestStatusApproved).Return(approved, nil)

		r, err := uc.Approve(context.Background(), reqAdmin, "req-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Status != entities.RequestStatusApproved {
			t.Fatalf("expected approved, got %s", r.Status)
		}
	})

	t.Run("client may not approve its own request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pending, nil)

		_, err := uc.Approve(context.Background(), reqClient, "req-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("rejecting an approved request is illegal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		approved := pending
		approved.Status = entities.RequestStatusApproved
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(approved, nil)

		_, err := uc.Reject(context.Background(), reqAdmin, "req-1")
		if !errors.Is(err, workflow.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Request{}, nil)

		_, err := uc.Approve(context.Background(), reqAdmin, "missing")
		if !errors.Is(err, ErrRequestNotFound) {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})
}

func TestRequestUseCase_Visibility(t *testing.T) {
	stored := entities.Request{ID: "req-1", ClientID: "client-2", Status: entities.RequestStatusPending}

	t.Run("client cannot read another client's request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(stored, nil)

		_, err := uc.GetByID(context.Background(), reqClient, "req-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("client list is scoped to its own id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().ListByClientID(gomock.Any(), "client-1").Return([]entities.Request{}, nil)

		if _, err := uc.List(context.Background(), reqClient); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRequestUseCase_AttachFile(t *testing.T) {
	stored := entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusPending}

	t.Run("stores the object and appends its name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		storage := mock_interfaces.NewMockIAttachmentStorage(ctrl)
		uc := NewRequestUseCase(repo, storage, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(stored, nil)
		storage.EXPECT().Upload(gomock.Any(), []byte("img"), "leak.jpg").Return("attachment_ab12_1.jpg", nil)
		repo.EXPECT().AppendAttachment(gomock.Any(), "req-1", "attachment_ab12_1.jpg").
			Return(entities.Request{ID: "req-1", ClientID: "client-1", Attachments: []string{"attachment_ab12_1.jpg"}}, nil)

		r, err := uc.AttachFile(context.Background(), reqClient, "req-1", "leak.jpg", []byte("img"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Attachments) != 1 {
			t.Fatalf("expected one attachment, got %d", len(r.Attachments))
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(stored, nil)

		_, err := uc.AttachFile(context.Background(), reqClient, "req-1", "leak.jpg", nil)
		if !errors.Is(err, ErrInvalidRequestInput) {
			t.Fatalf("expected ErrInvalidRequestInput, got %v", err)
		}
	})
}

func TestRequestUseCase_AttachmentURL(t *testing.T) {
	stored := entities.Request{ID: "req-1", ClientID: "client-1", Attachments: []string{"attachment_ab12_1.jpg"}}

	t.Run("signs a referenced object", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		storage := mock_interfaces.NewMockIAttachmentStorage(ctrl)
		uc := NewRequestUseCase(repo, storage, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(stored, nil)
		storage.EXPECT().PresignedURL(gomock.Any(), "attachment_ab12_1.jpg").Return("https://storage/attachment_ab12_1.jpg?sig=x", nil)

		url, err := uc.AttachmentURL(context.Background(), reqClient, "req-1", "attachment_ab12_1.jpg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url == "" {
			t.Fatalf("expected a url")
		}
	})

	t.Run("rejects an object the request does not reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		storage := mock_interfaces.NewMockIAttachmentStorage(ctrl)
		uc := NewRequestUseCase(repo, storage, nil)

		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(stored, nil)

		_, err := uc.AttachmentURL(context.Background(), reqClient, "req-1", "someone_elses_object.jpg")
		if !errors.Is(err, ErrInvalidRequestInput) {
			t.Fatalf("expected ErrInvalidRequestInput, got %v", err)
		}
	})

	t.Run("another client's request is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewRequestUseCase(repo, nil, nil)

		other := stored
		other.ClientID = "client-9"
		repo.EXPECT().GetByID(gomock.Any(), "req-1").Return(other, nil)

		_, err := uc.AttachmentURL(context.Background(), reqClient, "req-1", "attachment_ab12_1.jpg")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
