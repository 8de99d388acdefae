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
	ErrRequestNotFound     = errors.New("request not found")
	ErrInvalidRequestID    = errors.New("invalid request id")
	ErrInvalidRequestInput = errors.New("invalid request input")
)

// CreateRequestInput is the domain command for opening a maintenance
// request. ClientID is honored for admins acting on a client's behalf and
// ignored for client actors, whose own id always wins.
type CreateRequestInput struct {
	ClientID    string
	Title       string
	Description string
	Location    string
	ServiceType entities.ServiceType
	Priority    entities.Priority
}

// IRequestUseCase exposes the maintenance-request workflow operations.

type IRequestUseCase interface {
	Create(ctx context.Context, actor entities.ActorContext, in CreateRequestInput) (entities.Request, error)
	GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error)
	List(ctx context.Context, actor entities.ActorContext) ([]entities.Request, error)
	Approve(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error)
	Reject(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error)
	Delete(ctx context.Context, actor entities.ActorContext, id string) error
	AttachFile(ctx context.Context, actor entities.ActorContext, id, filename string, data []byte) (entities.Request, error)
	AttachmentURL(ctx context.Context, actor entities.ActorContext, id, objectName string) (string, error)
}

type RequestUseCase struct {
	repo     interfaces.IRequestRepository
	storage  interfaces.IAttachmentStorage
	notifier interfaces.ITransitionNotifier
}

var _ IRequestUseCase = (*RequestUseCase)(nil)

func NewRequestUseCase(repo interfaces.IRequestRepository, storage interfaces.IAttachmentStorage, notifier interfaces.ITransitionNotifier) *RequestUseCase {
	return &RequestUseCase{repo: repo, storage: storage, notifier: notifier}
}

func (u *RequestUseCase) Create(ctx context.Context, actor entities.ActorContext, in CreateRequestInput) (entities.Request, error) {
	clientID := strings.TrimSpace(in.ClientID)
	switch actor.Role {
	case entities.RoleClient:
		clientID = actor.ClientID
	case entities.RoleAdmin:
		if clientID == "" {
			return entities.Request{}, fmt.Errorf("%w: client_id is required", ErrInvalidRequestInput)
		}
	default:
		return entities.Request{}, fmt.Errorf("%w: role %q may not create requests", workflow.ErrForbidden, actor.Role)
	}

	if strings.TrimSpace(in.Title) == "" {
		return entities.Request{}, fmt.Errorf("%w: title is required", ErrInvalidRequestInput)
	}
	if !in.ServiceType.Valid() {
		return entities.Request{}, fmt.Errorf("%w: unknown service type %q", ErrInvalidRequestInput, in.ServiceType)
	}
	if in.Priority == "" {
		in.Priority = entities.PriorityMedium
	}
	if !in.Priority.Valid() {
		return entities.Request{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidRequestInput, in.Priority)
	}

	now := time.Now().UTC()
	r := entities.Request{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		ServiceType: in.ServiceType,
		Priority:    in.Priority,
		Status:      entities.RequestStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.repo.Create(ctx, r)
}

func (u *RequestUseCase) GetByID(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}
	if !actor.IsAdmin() && !actor.OwnsClient(r.ClientID) {
		return entities.Request{}, fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
	}
	return r, nil
}

func (u *RequestUseCase) List(ctx context.Context, actor entities.ActorContext) ([]entities.Request, error) {
	if actor.IsAdmin() {
		return u.repo.List(ctx)
	}
	if actor.Role == entities.RoleClient {
		return u.repo.ListByClientID(ctx, actor.ClientID)
	}
	return nil, fmt.Errorf("%w: role %q may not list requests", workflow.ErrForbidden, actor.Role)
}

func (u *RequestUseCase) Approve(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error) {
	return u.transition(ctx, actor, id, workflow.EventApprove)
}

func (u *RequestUseCase) Reject(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error) {
	return u.transition(ctx, actor, id, workflow.EventReject)
}

// transition re-validates the edge and the guard against the freshly read
// status, then commits with an update conditioned on that same status.
func (u *RequestUseCase) transition(ctx context.Context, actor entities.ActorContext, id string, event workflow.Event) (entities.Request, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}

	to, err := workflow.Resolve(actor, workflow.KindRequest, string(r.Status), event, workflow.Ownership{ClientID: r.ClientID})
	if err != nil {
		return entities.Request{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, r.ID, r.Status, entities.RequestStatus(to))
	if err != nil {
		return entities.Request{}, err
	}
	log.Infof("[request][usecase] transition committed id=%s event=%s status=%s", r.ID, event, updated.Status)
	notifyTransition(ctx, u.notifier, workflow.KindRequest, r.ID, event, string(updated.Status))
	return updated, nil
}

func (u *RequestUseCase) Delete(ctx context.Context, actor entities.ActorContext, id string) error {
	r, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !actor.OwnsClient(r.ClientID) {
		return fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
	}
	return u.repo.Delete(ctx, r.ID)
}

func (u *RequestUseCase) AttachFile(ctx context.Context, actor entities.ActorContext, id, filename string, data []byte) (entities.Request, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}
	if !actor.IsAdmin() && !actor.OwnsClient(r.ClientID) {
		return entities.Request{}, fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
	}
	if len(data) == 0 {
		return entities.Request{}, fmt.Errorf("%w: empty attachment", ErrInvalidRequestInput)
	}
	if u.storage == nil {
		return entities.Request{}, errors.New("attachment storage not configured")
	}

	objectName, err := u.storage.Upload(ctx, data, filename)
	if err != nil {
		return entities.Request{}, err
	}
	return u.repo.AppendAttachment(ctx, r.ID, objectName)
}

// AttachmentURL returns a short-lived download link for an attachment the
// request actually references.
func (u *RequestUseCase) AttachmentURL(ctx context.Context, actor entities.ActorContext, id, objectName string) (string, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return "", err
	}
	if !actor.IsAdmin() && !actor.OwnsClient(r.ClientID) {
		return "", fmt.Errorf("%w: request belongs to another client", workflow.ErrForbidden)
	}
	objectName = strings.TrimSpace(objectName)
	found := false
	for _, a := range r.Attachments {
		if a == objectName {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%w: attachment %q is not on this request", ErrInvalidRequestInput, objectName)
	}
	if u.storage == nil {
		return "", errors.New("attachment storage not configured")
	}
	return u.storage.PresignedURL(ctx, objectName)
}

func (u *RequestUseCase) load(ctx context.Context, id string) (entities.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Request{}, ErrInvalidRequestID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}
	if r.ID == "" {
		return entities.Request{}, ErrRequestNotFound
	}
	return r, nil
}
