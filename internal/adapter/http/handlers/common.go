package handlers

import (
	"errors"
	"net/http"

	"manutencao_xpto/internal/adapter/http/middleware"
	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/domain/workflow"
	"manutencao_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// requireActor pulls the authenticated actor out of the gin context. It only
// fails when a route was wired without the auth middleware.
func requireActor(c *gin.Context) (entities.ActorContext, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return entities.ActorContext{}, false
	}
	return actor, true
}

// mapWorkflowError translates the shared transition sentinels. Entity
// handlers try it first and fall back to their own mapping when it
// returns nil.
func mapWorkflowError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, workflow.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, workflow.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Actor is not permitted to perform this operation", http.StatusForbidden)
	case errors.Is(err, workflow.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", "Transition is not allowed from the current status", http.StatusConflict)
	case errors.Is(err, workflow.ErrIncompleteTasks):
		return pkg.NewDomainErrorSimple("INCOMPLETE_TASKS", "Work order has tasks that are not completed", http.StatusConflict)
	case errors.Is(err, workflow.ErrMissingClient):
		return pkg.NewDomainErrorSimple("MISSING_CLIENT", "No billing client could be resolved", http.StatusUnprocessableEntity)
	case errors.Is(err, workflow.ErrConcurrencyConflict):
		return pkg.NewDomainErrorSimple("CONCURRENCY_CONFLICT", "Entity was modified concurrently, retry the operation", http.StatusConflict)
	default:
		return nil
	}
}
