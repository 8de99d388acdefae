package request

type QuoteItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateQuoteRequest struct {
	RequestID   string             `json:"request_id" binding:"required"`
	Description string             `json:"description"`
	Items       []QuoteItemRequest `json:"items" binding:"required"`
}

// UpdateQuoteRequest replaces the line items of a pending quote.
type UpdateQuoteRequest struct {
	Description string             `json:"description"`
	Items       []QuoteItemRequest `json:"items" binding:"required"`
}
