package response

import (
	"time"

	"manutencao_xpto/internal/domain/entities"
)

type TaskResponse struct {
	ID            string     `json:"id"`
	WorkOrderID   string     `json:"work_order_id"`
	Description   string     `json:"description"`
	EstimatedTime int        `json:"estimated_time"`
	Status        string     `json:"status"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromTask(t entities.Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		WorkOrderID:   t.WorkOrderID,
		Description:   t.Description,
		EstimatedTime: t.EstimatedTime,
		Status:        string(t.Status),
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func FromTasks(tasks []entities.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, FromTask(t))
	}
	return out
}
