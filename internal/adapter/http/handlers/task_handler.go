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

var errInvalidTaskPayload = pkg.NewDomainErrorSimple("INVALID_TASK_INPUT", "Invalid task payload", http.StatusBadRequest)

// TaskHandler handles HTTP requests for work-order tasks.

type TaskHandler struct {
	usecase usecase.ITaskUseCase
}

func NewTaskHandler(uc usecase.ITaskUseCase) *TaskHandler {
	return &TaskHandler{usecase: uc}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload request.CreateTaskRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTaskPayload.HTTPStatus, errInvalidTaskPayload.ToHTTPError())
		return
	}

	task, err := h.usecase.Create(c.Request.Context(), actor, usecase.CreateTaskInput{
		WorkOrderID:   payload.WorkOrderID,
		Description:   payload.Description,
		EstimatedTime: payload.EstimatedTime,
	})
	if err != nil {
		appErr := mapTaskError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromTask(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	task, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapTaskError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTask(task))
}

func (h *TaskHandler) ListTasksByWorkOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	tasks, err := h.usecase.ListByWorkOrder(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapTaskError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTasks(tasks))
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	h.patchTaskStatus(c, h.usecase.Start)
}

func (h *TaskHandler) PauseTask(c *gin.Context) {
	h.patchTaskStatus(c, h.usecase.Pause)
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.patchTaskStatus(c, h.usecase.Complete)
}

func (h *TaskHandler) patchTaskStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor entities.ActorContext, id string) (entities.Task, error),
) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	task, err := updater(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		appErr := mapTaskError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTask(task))
}

func mapTaskError(err error) *pkg.AppError {
	if appErr := mapWorkflowError(err); appErr != nil {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidTaskID), errors.Is(err, usecase.ErrInvalidTaskInput):
		return pkg.NewDomainErrorSimple("INVALID_TASK_INPUT", "Invalid task payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTaskNotFound):
		return pkg.NewDomainErrorSimple("TASK_NOT_FOUND", "Task not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWorkOrderNotFound):
		return pkg.NewDomainErrorSimple("WORK_ORDER_NOT_FOUND", "Work order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
