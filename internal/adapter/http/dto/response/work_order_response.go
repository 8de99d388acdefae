package response

import (
	"time"

	"manutencao_xpto/internal/domain/entities"
)

type WorkOrderResponse struct {
	ID            string     `json:"id"`
	RequestID     string     `json:"request_id,omitempty"`
	AssignedTo    string     `json:"assigned_to"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Status        string     `json:"status"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromWorkOrder(w entities.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:            w.ID,
		RequestID:     w.RequestID,
		AssignedTo:    w.AssignedTo,
		Title:         w.Title,
		Description:   w.Description,
		ScheduledDate: w.ScheduledDate,
		Status:        string(w.Status),
		CompletedDate: w.CompletedDate,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func FromWorkOrders(orders []entities.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, 0, len(orders))
	for _, w := range orders {
		out = append(out, FromWorkOrder(w))
	}
	return out
}
