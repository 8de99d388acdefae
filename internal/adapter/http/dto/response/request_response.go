package response

import (
	"time"

	"manutencao_xpto/internal/domain/entities"
)

type RequestResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ServiceType string    `json:"service_type"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromRequest(r entities.Request) RequestResponse {
	attachments := r.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return RequestResponse{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		ServiceType: string(r.ServiceType),
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		Attachments: attachments,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromRequests(reqs []entities.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, FromRequest(r))
	}
	return out
}
