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
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvalidInvoiceID    = errors.New("invalid invoice id")
	ErrInvalidInvoiceInput = errors.New("invalid invoice input")
)

// CreateInvoiceInput bills a completed work order. ClientID is only needed
// when the work order is not linked to a request; when it is, the request's
// client is authoritative.
type CreateInvoiceInput struct {
	WorkOrderID string
	ClientID    string
	Amount      float64
	DueDate     time.Time
}

// IInvoiceUseCase exposes billing operations. Quote-originated invoices are
// minted by the quote approval cascade, not here.

type IInvoiceUseCase interface {
	CreateForWorkOrder(ctx context.Context, actor entities.ActorContext, in CreateInvoiceInput) (entities.Invoice, error)
	GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Invoice, error)
	ListByClient(ctx context.Context, actor entities.ActorContext, clientID string) ([]entities.Invoice, error)
	MarkPaid(ctx context.Context, actor entities.ActorContext, id string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo          interfaces.IInvoiceRepository
	workOrderRepo interfaces.IWorkOrderRepository
	requestRepo   interfaces.IRequestRepository
	notifier      interfaces.ITransitionNotifier
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, workOrderRepo interfaces.IWorkOrderRepository, requestRepo interfaces.IRequestRepository, notifier interfaces.ITransitionNotifier) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, workOrderRepo: workOrderRepo, requestRepo: requestRepo, notifier: notifier}
}

func (u *InvoiceUseCase) CreateForWorkOrder(ctx context.Context, actor entities.ActorContext, in CreateInvoiceInput) (entities.Invoice, error) {
	if !actor.IsAdmin() {
		return entities.Invoice{}, fmt.Errorf("%w: only admins create invoices", workflow.ErrForbidden)
	}
	if in.Amount <= 0 {
		return entities.Invoice{}, fmt.Errorf("%w: amount must be > 0", ErrInvalidInvoiceInput)
	}

	workOrderID := strings.TrimSpace(in.WorkOrderID)
	if workOrderID == "" {
		return entities.Invoice{}, fmt.Errorf("%w: work_order_id is required", ErrInvalidInvoiceInput)
	}
	w, err := u.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if w.ID == "" {
		return entities.Invoice{}, ErrWorkOrderNotFound
	}
	if w.Status != entities.WorkOrderStatusCompleted {
		return entities.Invoice{}, fmt.Errorf("%w: work order is %s, not completed", ErrInvalidInvoiceInput, w.Status)
	}

	clientID, err := u.resolveClient(ctx, w, strings.TrimSpace(in.ClientID))
	if err != nil {
		return entities.Invoice{}, err
	}

	dueDate := in.DueDate
	now := time.Now().UTC()
	if dueDate.IsZero() {
		dueDate = now.Add(invoiceDueIn)
	}

	i := entities.Invoice{
		ID:          uuid.NewString(),
		WorkOrderID: w.ID,
		ClientID:    clientID,
		Amount:      in.Amount,
		DueDate:     dueDate,
		Status:      entities.InvoiceStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.repo.Create(ctx, i)
}

// resolveClient picks the billing target: the linked request's client when
// the work order has one, the explicitly supplied id otherwise. A supplied
// id that contradicts the request link is an input error, not a silent
// override.
func (u *InvoiceUseCase) resolveClient(ctx context.Context, w entities.WorkOrder, explicit string) (string, error) {
	if w.RequestID == "" {
		if explicit == "" {
			return "", fmt.Errorf("%w: client_id is required for an unlinked work order", ErrInvalidInvoiceInput)
		}
		return explicit, nil
	}
	req, err := u.requestRepo.GetByID(ctx, w.RequestID)
	if err != nil {
		return "", err
	}
	if req.ID == "" || req.ClientID == "" {
		return "", workflow.ErrMissingClient
	}
	if explicit != "" && explicit != req.ClientID {
		return "", fmt.Errorf("%w: client_id does not match the linked request", ErrInvalidInvoiceInput)
	}
	return req.ClientID, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Invoice, error) {
	i, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if !actor.IsAdmin() && !actor.OwnsClient(i.ClientID) {
		return entities.Invoice{}, fmt.Errorf("%w: invoice belongs to another client", workflow.ErrForbidden)
	}
	return i, nil
}

func (u *InvoiceUseCase) ListByClient(ctx context.Context, actor entities.ActorContext, clientID string) ([]entities.Invoice, error) {
	clientID = strings.TrimSpace(clientID)
	if actor.Role == entities.RoleClient {
		clientID = actor.ClientID
	} else if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: role %q may not list invoices", workflow.ErrForbidden, actor.Role)
	}
	if clientID == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrInvalidInvoiceInput)
	}
	return u.repo.ListByClientID(ctx, clientID)
}

func (u *InvoiceUseCase) MarkPaid(ctx context.Context, actor entities.ActorContext, id string) (entities.Invoice, error) {
	i, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}

	to, err := workflow.Resolve(actor, workflow.KindInvoice, string(i.Status), workflow.EventMarkPaid, workflow.Ownership{ClientID: i.ClientID})
	if err != nil {
		return entities.Invoice{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, i.ID, i.Status, entities.InvoiceStatus(to))
	if err != nil {
		return entities.Invoice{}, err
	}
	log.Infof("[invoice][usecase] marked paid id=%s amount=%.2f", updated.ID, updated.Amount)
	notifyTransition(ctx, u.notifier, workflow.KindInvoice, updated.ID, workflow.EventMarkPaid, string(updated.Status))
	return updated, nil
}

func (u *InvoiceUseCase) load(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	i, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if i.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return i, nil
}
