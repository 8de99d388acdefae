package handlers

import (
	"errors"
	"net/http"

	request "manutencao_xpto/internal/adapter/http/dto/request"
	response "manutencao_xpto/internal/adapter/http/dto/response"
	"manutencao_xpto/internal/usecase"
	"manutencao_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)

// InvoiceHandler handles HTTP requests for invoices. Quote-originated
// invoices are created by the quote approval cascade; this surface only
// covers invoices billed directly against completed work orders.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.CreateForWorkOrder(c.Request.Context(), actor, usecase.CreateInvoiceInput{
		WorkOrderID: payload.WorkOrderID,
		ClientID:    payload.ClientID,
		Amount:      payload.Amount,
		DueDate:     payload.DueDate,
	})
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) ListInvoicesByClient(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoices, err := h.usecase.ListByClient(c.Request.Context(), actor, c.Query("client_id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := h.usecase.MarkPaid(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func mapInvoiceError(err error) *pkg.AppError {
	if appErr := mapWorkflowError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidInvoiceInput):
		return pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
