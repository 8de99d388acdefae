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

var errInvalidWorkOrderPayload = pkg.NewDomainErrorSimple("INVALID_WORK_ORDER_INPUT", "Invalid work order payload", http.StatusBadRequest)

// WorkOrderHandler handles HTTP requests for work orders.

type WorkOrderHandler struct {
	usecase usecase.IWorkOrderUseCase
}

func NewWorkOrderHandler(uc usecase.IWorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{usecase: uc}
}

func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWorkOrderPayload.HTTPStatus, errInvalidWorkOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), actor, usecase.CreateWorkOrderInput{
		RequestID:     payload.RequestID,
		AssignedTo:    payload.AssignedTo,
		Title:         payload.Title,
		Description:   payload.Description,
		ScheduledDate: payload.ScheduledDate,
	})
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromWorkOrder(order))
}

func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	order, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrder(order))
}

func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	orders, err := h.usecase.List(c.Request.Context(), actor)
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrders(orders))
}

func (h *WorkOrderHandler) StartWorkOrder(c *gin.Context) {
	h.patchWorkOrderStatus(c, h.usecase.Start)
}

func (h *WorkOrderHandler) CompleteWorkOrder(c *gin.Context) {
	h.patchWorkOrderStatus(c, h.usecase.Complete)
}

func (h *WorkOrderHandler) ForceCompleteWorkOrder(c *gin.Context) {
	h.patchWorkOrderStatus(c, h.usecase.ForceComplete)
}

// TasksCompleted reports whether every task under the work order has
// finished, so a UI can decide when to offer completion.
func (h *WorkOrderHandler) TasksCompleted(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	done, err := h.usecase.AllTasksCompleted(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"all_tasks_completed": done})
}

func (h *WorkOrderHandler) patchWorkOrderStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.ActorContext, id string) (entities.WorkOrder, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	order, err := updater(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapWorkOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromWorkOrder(order))
}

func mapWorkOrderError(err error) *pkg.AppError {
	if appErr := mapWorkflowError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidWorkOrderID), errors.Is(err, usecase.ErrInvalidWorkOrderInput):
		return pkg.NewDomainErrorSimple("INVALID_WORK_ORDER_INPUT", "Invalid work order payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Maintenance request not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
