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
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrInvalidQuoteInput = errors.New("invalid quote input")
)

// invoiceDueIn is the billing term applied to quote-originated invoices.
const invoiceDueIn = 30 * 24 * time.Hour

// QuoteItemInput carries one inbound quote line. Any total the caller sends
// alongside the items is deliberately absent here: totals are derived, never
// accepted.
type QuoteItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

type CreateQuoteInput struct {
	RequestID   string
	Description string
	Items       []QuoteItemInput
}

// IQuoteUseCase exposes quote lifecycle operations, including the approval
// cascade that mints the invoice.

type IQuoteUseCase interface {
	Create(ctx context.Context, actor entities.ActorContext, in CreateQuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error)
	ListByRequest(ctx context.Context, actor entities.ActorContext, requestID string) ([]entities.Quote, error)
	UpdateItems(ctx context.Context, actor entities.ActorContext, id, description string, items []QuoteItemInput) (entities.Quote, error)
	Approve(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error)
	Reject(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo        interfaces.IQuoteRepository
	requestRepo interfaces.IRequestRepository
	notifier    interfaces.ITransitionNotifier
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, requestRepo interfaces.IRequestRepository, notifier interfaces.ITransitionNotifier) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, requestRepo: requestRepo, notifier: notifier}
}

func (u *QuoteUseCase) Create(ctx context.Context, actor entities.ActorContext, in CreateQuoteInput) (entities.Quote, error) {
	if actor.Role != entities.RoleAdmin && actor.Role != entities.RoleClient {
		return entities.Quote{}, fmt.Errorf("%w: role %q may not create quotes", workflow.ErrForbidden, actor.Role)
	}

	items, err := validateQuoteItems(in.Items)
	if err != nil {
		return entities.Quote{}, err
	}

	requestID := strings.TrimSpace(in.RequestID)
	if requestID != "" {
		req, err := u.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return entities.Quote{}, err
		}
		if req.ID == "" {
			return entities.Quote{}, ErrRequestNotFound
		}
		if req.Status == entities.RequestStatusRejected {
			return entities.Quote{}, fmt.Errorf("%w: rejected request cannot be quoted", ErrInvalidQuoteInput)
		}
		if actor.Role == entities.RoleClient && !actor.OwnsClient(req.ClientID) {
			return entities.Quote{}, fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
		}
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		Description: in.Description,
		Items:       items,
		Total:       entities.ComputeTotal(items),
		Status:      entities.QuoteStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.repo.Create(ctx, q)
}

func (u *QuoteUseCase) GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if actor.IsAdmin() {
		return q, nil
	}
	if actor.Role == entities.RoleClient && q.RequestID != "" {
		req, err := u.requestRepo.GetByID(ctx, q.RequestID)
		if err != nil {
			return entities.Quote{}, err
		}
		if actor.OwnsClient(req.ClientID) {
			return q, nil
		}
	}
	return entities.Quote{}, fmt.Errorf("%w: quote is not visible to this actor", workflow.ErrForbidden)
}

// ListByRequest returns the quotes raised against one request. Clients only
// see quotes on their own requests.
func (u *QuoteUseCase) ListByRequest(ctx context.Context, actor entities.ActorContext, requestID string) ([]entities.Quote, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, fmt.Errorf("%w: request_id is required", ErrInvalidQuoteInput)
	}
	if !actor.IsAdmin() {
		if actor.Role != entities.RoleClient {
			return nil, fmt.Errorf("%w: role %q may not list quotes", workflow.ErrForbidden, actor.Role)
		}
		req, err := u.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, ErrRequestNotFound
		}
		if !actor.OwnsClient(req.ClientID) {
			return nil, fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
		}
	}
	return u.repo.ListByRequestID(ctx, requestID)
}

// UpdateItems replaces the line items of a still-pending quote and
// recomputes the total server-side.
func (u *QuoteUseCase) UpdateItems(ctx context.Context, actor entities.ActorContext, id, description string, items []QuoteItemInput) (entities.Quote, error) {
	q, err := u.GetByID(ctx, actor, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, fmt.Errorf("%w: quote %q is not editable", workflow.ErrIllegalTransition, q.Status)
	}

	validated, err := validateQuoteItems(items)
	if err != nil {
		return entities.Quote{}, err
	}
	return u.repo.UpdateItems(ctx, q.ID, description, validated, entities.ComputeTotal(validated))
}

// Approve runs the quote approval transition together with its mandated
// cascade: exactly one invoice for quote.Total, billed to the client of the
// linked request, due in 30 days. The status flip, the invoice creation and
// the invoice_id back-link commit as one transaction; if any part cannot
// commit the whole operation fails and no invoice exists.
func (u *QuoteUseCase) Approve(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}

	if _, err := workflow.Resolve(actor, workflow.KindQuote, string(q.Status), workflow.EventApprove, workflow.Ownership{}); err != nil {
		return entities.Quote{}, err
	}

	clientID, err := u.billingClient(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	now := time.Now().UTC()
	invoice := entities.Invoice{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Amount:    q.Total,
		DueDate:   now.Add(invoiceDueIn),
		Status:    entities.InvoiceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated, err := u.repo.ApproveWithInvoice(ctx, q.ID, invoice)
	if err != nil {
		return entities.Quote{}, err
	}
	log.Infof("[quote][usecase] approved id=%s invoice_id=%s amount=%.2f", updated.ID, updated.InvoiceID, invoice.Amount)
	notifyTransition(ctx, u.notifier, workflow.KindQuote, updated.ID, workflow.EventApprove, string(updated.Status))
	return updated, nil
}

func (u *QuoteUseCase) Reject(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error) {
	q, err := u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}

	to, err := workflow.Resolve(actor, workflow.KindQuote, string(q.Status), workflow.EventReject, workflow.Ownership{})
	if err != nil {
		return entities.Quote{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, q.ID, q.Status, entities.QuoteStatus(to))
	if err != nil {
		return entities.Quote{}, err
	}
	notifyTransition(ctx, u.notifier, workflow.KindQuote, updated.ID, workflow.EventReject, string(updated.Status))
	return updated, nil
}

// billingClient resolves who the cascade invoice bills. An unlinked quote
// has no billing target; that is a hard MissingClient failure, not a
// silently skipped invoice.
func (u *QuoteUseCase) billingClient(ctx context.Context, q entities.Quote) (string, error) {
	if q.RequestID == "" {
		return "", workflow.ErrMissingClient
	}
	req, err := u.requestRepo.GetByID(ctx, q.RequestID)
	if err != nil {
		return "", err
	}
	if req.ID == "" || req.ClientID == "" {
		return "", workflow.ErrMissingClient
	}
	return req.ClientID, nil
}

func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func validateQuoteItems(in []QuoteItemInput) ([]entities.QuoteItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidQuoteInput)
	}
	items := make([]entities.QuoteItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.Description) == "" {
			return nil, fmt.Errorf("%w: item %d has no description", ErrInvalidQuoteInput, i)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity must be >= 1", ErrInvalidQuoteInput, i)
		}
		if it.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item %d unit price must be >= 0", ErrInvalidQuoteInput, i)
		}
		items = append(items, entities.QuoteItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items, nil
}
