package handlers

import (
	"context"
	"errors"
	"net/http"

	request "manutencao_xpto/internal/adapter/http/dto/request"
	response "manutencao_xpto/internal/adapter/http/dto/response"
	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/usecase"
	"manutencao_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quotes. Approval runs the invoice
// cascade inside the use case.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Create(c.Request.Context(), actor, usecase.CreateQuoteInput{
		RequestID:   payload.RequestID,
		Description: payload.Description,
		Items:       toQuoteItemInputs(payload.Items),
	})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	quote, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListQuotesByRequest lists the quotes raised against one maintenance
// request. Mounted under the requests group.
func (h *QuoteHandler) ListQuotesByRequest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	quotes, err := h.usecase.ListByRequest(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.UpdateItems(c.Request.Context(), actor, c.Param("id"), payload.Description, toQuoteItemInputs(payload.Items))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.Approve)
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	h.patchQuoteStatus(c, h.usecase.Reject)
}

func (h *QuoteHandler) patchQuoteStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.ActorContext, id string) (entities.Quote, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	quote, err := updater(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func toQuoteItemInputs(items []request.QuoteItemRequest) []usecase.QuoteItemInput {
	out := make([]usecase.QuoteItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.QuoteItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

func mapQuoteError(err error) *pkg.AppError {
	if appErr := mapWorkflowError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput):
		return pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Maintenance request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
