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
	quoteAdmin  = entities.ActorContext{UserID: "u-admin", Role: entities.RoleAdmin}
	quoteClient = entities.ActorContext{UserID: "u-client", Role: entities.RoleClient, ClientID: "client-1"}
)

func TestQuoteUseCase_Create(t *testing.T) {
	t.Run("technician may not create", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		tech := entities.ActorContext{UserID: "u-t", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
		_, err := uc.Create(context.Background(), tech, CreateQuoteInput{Items: []QuoteItemInput{{Description: "x", Quantity: 1}}})
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), quoteAdmin, CreateQuoteInput{})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), quoteAdmin, CreateQuoteInput{
			Items: []QuoteItemInput{{Description: "Paint wall", Quantity: 0, UnitPrice: 50}},
		})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("negative unit price", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), quoteAdmin, CreateQuoteInput{
			Items: []QuoteItemInput{{Description: "Paint wall", Quantity: 1, UnitPrice: -1}},
		})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("rejected request cannot be quoted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewQuoteUseCase(nil, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusRejected}, nil)

		_, err := uc.Create(context.Background(), quoteAdmin, CreateQuoteInput{
			RequestID: "req-1",
			Items:     []QuoteItemInput{{Description: "Paint wall", Quantity: 1, UnitPrice: 50}},
		})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("client may not quote another client's request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewQuoteUseCase(nil, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-2", Status: entities.RequestStatusPending}, nil)

		_, err := uc.Create(context.Background(), quoteClient, CreateQuoteInput{
			RequestID: "req-1",
			Items:     []QuoteItemInput{{Description: "Paint wall", Quantity: 1, UnitPrice: 50}},
		})
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("total is derived from items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewQuoteUseCase(repo, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusPending}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Total != 100 {
					t.Fatalf("expected total 100, got %v", q.Total)
				}
				if q.Status != entities.QuoteStatusPending {
					t.Fatalf("expected pending, got %s", q.Status)
				}
				return q, nil
			})

		q, err := uc.Create(context.Background(), quoteAdmin, CreateQuoteInput{
			RequestID: "req-1",
			Items:     []QuoteItemInput{{Description: "Paint wall", Quantity: 2, UnitPrice: 50}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID == "" {
			t.Fatal("expected generated id")
		}
	})
}

func TestQuoteUseCase_Approve(t *testing.T) {
	pending := entities.Quote{ID: "q-1", RequestID: "req-1", Total: 100, Status: entities.QuoteStatusPending}

	t.Run("mints exactly one invoice through the transactional repo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		notifier := mock_interfaces.NewMockITransitionNotifier(ctrl)
		uc := NewQuoteUseCase(repo, requestRepo, notifier)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusApproved}, nil)
		repo.EXPECT().ApproveWithInvoice(gomock.Any(), "q-1", gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, quoteID string, invoice entities.Invoice) (entities.Quote, error) {
				if invoice.Amount != 100 {
					t.Fatalf("expected invoice amount 100, got %v", invoice.Amount)
				}
				if invoice.ClientID != "client-1" {
					t.Fatalf("expected invoice billed to client-1, got %q", invoice.ClientID)
				}
				if invoice.Status != entities.InvoiceStatusPending {
					t.Fatalf("expected pending invoice, got %s", invoice.Status)
				}
				approved := pending
				approved.Status = entities.QuoteStatusApproved
				approved.InvoiceID = invoice.ID
				return approved, nil
			})
		notifier.EXPECT().TransitionCommitted(gomock.Any(), workflow.KindQuote, "q-1", workflow.EventApprove, "approved").Return(nil)

		q, err := uc.Approve(context.Background(), quoteAdmin, "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.InvoiceID == "" {
			t.Fatal("expected invoice id back-link")
		}
	})

	t.Run("approving an approved quote is illegal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		approved := pending
		approved.Status = entities.QuoteStatusApproved
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(approved, nil)

		_, err := uc.Approve(context.Background(), quoteAdmin, "q-1")
		if !errors.Is(err, workflow.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("client may not approve", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)

		_, err := uc.Approve(context.Background(), quoteClient, "q-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unlinked quote has no billing client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		unlinked := pending
		unlinked.RequestID = ""
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(unlinked, nil)

		_, err := uc.Approve(context.Background(), quoteAdmin, "q-1")
		if !errors.Is(err, workflow.ErrMissingClient) {
			t.Fatalf("expected ErrMissingClient, got %v", err)
		}
	})

	t.Run("lost race surfaces as concurrency conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewQuoteUseCase(repo, requestRepo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-1"}, nil)
		repo.EXPECT().ApproveWithInvoice(gomock.Any(), "q-1", gomock.Any()).
			Return(entities.Quote{}, workflow.ErrConcurrencyConflict)

		_, err := uc.Approve(context.Background(), quoteAdmin, "q-1")
		if !errors.Is(err, workflow.ErrConcurrencyConflict) {
			t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, nil)

		_, err := uc.Approve(context.Background(), quoteAdmin, "missing")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestQuoteUseCase_Reject(t *testing.T) {
	pending := entities.Quote{ID: "q-1", RequestID: "req-1", Status: entities.QuoteStatusPending}

	t.Run("admin rejects without invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		rejected := pending
		rejected.Status = entities.QuoteStatusRejected
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(pending, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusPending, entities.QuoteStatusRejected).Return(rejected, nil)

		q, err := uc.Reject(context.Background(), quoteAdmin, "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusRejected {
			t.Fatalf("expected rejected, got %s", q.Status)
		}
		if q.InvoiceID != "" {
			t.Fatal("rejection must not mint an invoice")
		}
	})

	t.Run("rejecting a rejected quote is illegal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		rejected := pending
		rejected.Status = entities.QuoteStatusRejected
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(rejected, nil)

		_, err := uc.Reject(context.Background(), quoteAdmin, "q-1")
		if !errors.Is(err, workflow.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}

func TestQuoteUseCase_UpdateItems(t *testing.T) {
	t.Run("non pending quote is not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)

		_, err := uc.UpdateItems(context.Background(), quoteAdmin, "q-1", "", []QuoteItemInput{{Description: "x", Quantity: 1}})
		if !errors.Is(err, workflow.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("recomputes total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)
		repo.EXPECT().UpdateItems(gomock.Any(), "q-1", "revised", gomock.Any(), 75.0).
			Return(entities.Quote{ID: "q-1", Total: 75, Status: entities.QuoteStatusPending}, nil)

		q, err := uc.UpdateItems(context.Background(), quoteAdmin, "q-1", "revised", []QuoteItemInput{
			{Description: "Fix socket", Quantity: 3, UnitPrice: 25},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Total != 75 {
			t.Fatalf("expected total 75, got %v", q.Total)
		}
	})
}

func TestQuoteUseCase_ListByRequest(t *testing.T) {
	t.Run("admin lists without ownership check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil, nil)

		repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").
			Return([]entities.Quote{{ID: "q-1", RequestID: "req-1"}}, nil)

		quotes, err := uc.ListByRequest(context.Background(), quoteAdmin, "req-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quotes) != 1 {
			t.Fatalf("expected one quote, got %d", len(quotes))
		}
	})

	t.Run("client only sees quotes on its own request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		requestRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
		uc := NewQuoteUseCase(repo, requestRepo, nil)

		requestRepo.EXPECT().GetByID(gomock.Any(), "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-9"}, nil)

		_, err := uc.ListByRequest(context.Background(), quoteClient, "req-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("technician may not list", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		tech := entities.ActorContext{UserID: "u-t", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
		_, err := uc.ListByRequest(context.Background(), tech, "req-1")
		if !errors.Is(err, workflow.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
