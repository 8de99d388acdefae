package interfaces

import (
	"context"

	"manutencao_xpto/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// ApproveWithInvoice is the transactional hook for the approval cascade: in
// one atomic commit it moves the quote pending -> approved, links the new
// invoice id, and creates the invoice record. Either both writes land or
// neither does; a quote whose status already moved reports
// workflow.ErrConcurrencyConflict and creates nothing.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.Quote, error)
	UpdateItems(ctx context.Context, id, description string, items []entities.QuoteItem, total float64) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, expected, to entities.QuoteStatus) (entities.Quote, error)
	ApproveWithInvoice(ctx context.Context, quoteID string, invoice entities.Invoice) (entities.Quote, error)
}
