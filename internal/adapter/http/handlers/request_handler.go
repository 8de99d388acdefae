package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	request "manutencao_xpto/internal/adapter/http/dto/request"
	response "manutencao_xpto/internal/adapter/http/dto/response"
	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/usecase"
	"manutencao_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequestPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid maintenance request payload", http.StatusBadRequest)

// RequestHandler handles HTTP requests for maintenance requests.

type RequestHandler struct {
	usecase usecase.IRequestUseCase
}

func NewRequestHandler(uc usecase.IRequestUseCase) *RequestHandler {
	return &RequestHandler{usecase: uc}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	req, err := h.usecase.Create(c.Request.Context(), actor, usecase.CreateRequestInput{
		ClientID:    payload.ClientID,
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		ServiceType: entities.ServiceType(payload.ServiceType),
		Priority:    entities.Priority(payload.Priority),
	})
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRequest(req))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	req, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRequest(req))
}

func (h *RequestHandler) ListRequests(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	reqs, err := h.usecase.List(c.Request.Context(), actor)
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRequests(reqs))
}

func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	h.patchRequestStatus(c, h.usecase.Approve)
}

func (h *RequestHandler) RejectRequest(c *gin.Context) {
	h.patchRequestStatus(c, h.usecase.Reject)
}

func (h *RequestHandler) patchRequestStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.ActorContext, id string) (entities.Request, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	req, err := updater(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRequest(req))
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadAttachment accepts a multipart file and stores it alongside the
// request.
func (h *RequestHandler) UploadAttachment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(errInvalidRequestPayload.HTTPStatus, errInvalidRequestPayload.ToHTTPError())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		appErr := pkg.NewDomainError("ATTACHMENT_READ_FAILED", "Failed to read attachment", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	req, err := h.usecase.AttachFile(c.Request.Context(), actor, c.Param("id"), fileHeader.Filename, data)
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRequest(req))
}

// GetAttachmentURL returns a presigned download link for a stored
// attachment.
func (h *RequestHandler) GetAttachmentURL(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	url, err := h.usecase.AttachmentURL(c.Request.Context(), actor, c.Param("id"), c.Param("name"))
	if err != nil {
		appErr := mapRequestError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func mapRequestError(err error) *pkg.AppError {
	if appErr := mapWorkflowError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrInvalidRequestInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST_INPUT", "Invalid maintenance request payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Maintenance request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
