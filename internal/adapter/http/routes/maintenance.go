package routes

import (
	"manutencao_xpto/internal/adapter/http/handlers"
	"manutencao_xpto/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests   = "/requests"
	PathQuotes     = "/quotes"
	PathWorkOrders = "/workorders"
	PathTasks      = "/tasks"
	PathInvoices   = "/invoices"
)

// addMaintenanceRoutes wires the workflow endpoints. Every route requires a
// valid token; role checks live in the use cases so that illegal actors get
// the same error envelope everywhere.
func addMaintenanceRoutes(
	rg *gin.RouterGroup,
	am *middleware.AuthMiddleware,
	requestHandler *handlers.RequestHandler,
	quoteHandler *handlers.QuoteHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	taskHandler *handlers.TaskHandler,
	invoiceHandler *handlers.InvoiceHandler,
) {
	authed := am.WithAuthCheck()

	requests := rg.Group(PathRequests, authed)
	{
		requests.POST("", requestHandler.CreateRequest)
		requests.GET("", requestHandler.ListRequests)
		requests.GET("/:id", requestHandler.GetRequest)
		requests.PATCH("/:id/approve", requestHandler.ApproveRequest)
		requests.PATCH("/:id/reject", requestHandler.RejectRequest)
		requests.DELETE("/:id", requestHandler.DeleteRequest)
		requests.POST("/:id/attachments", requestHandler.UploadAttachment)
		requests.GET("/:id/attachments/:name", requestHandler.GetAttachmentURL)
		requests.GET("/:id/quotes", quoteHandler.ListQuotesByRequest)
	}

	quotes := rg.Group(PathQuotes, authed)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.PATCH("/:id/approve", quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
	}

	workOrders := rg.Group(PathWorkOrders, authed)
	{
		workOrders.POST("", workOrderHandler.CreateWorkOrder)
		workOrders.GET("", workOrderHandler.ListWorkOrders)
		workOrders.GET("/:id", workOrderHandler.GetWorkOrder)
		workOrders.GET("/:id/tasks", taskHandler.ListTasksByWorkOrder)
		workOrders.GET("/:id/tasks-completed", workOrderHandler.TasksCompleted)
		workOrders.PATCH("/:id/start", workOrderHandler.StartWorkOrder)
		workOrders.PATCH("/:id/complete", workOrderHandler.CompleteWorkOrder)
		workOrders.PATCH("/:id/force-complete", workOrderHandler.ForceCompleteWorkOrder)
	}

	tasks := rg.Group(PathTasks, authed)
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PATCH("/:id/start", taskHandler.StartTask)
		tasks.PATCH("/:id/pause", taskHandler.PauseTask)
		tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
	}

	invoices := rg.Group(PathInvoices, authed)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoicesByClient)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PATCH("/:id/pay", invoiceHandler.MarkInvoicePaid)
	}
}
