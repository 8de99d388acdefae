package interfaces

import (
	"context"

	"manutencao_xpto/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.

type IInvoiceRepository interface {
	Create(ctx context.Context, i entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error)
	UpdateStatus(ctx context.Context, id string, expected, to entities.InvoiceStatus) (entities.Invoice, error)
}
