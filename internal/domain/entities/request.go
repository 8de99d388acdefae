package entities

import "time"

// RequestStatus represents the triage lifecycle of a maintenance request.
//
// Domain notes:
//   - approved and rejected are both terminal; an approved request stays
//     approved and only enables downstream quote/work-order creation.
//   - rejection closes the request for good: nothing may be spawned from it.

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// ServiceType is the closed set of trades a request may ask for.
type ServiceType string

const (
	ServiceTypeElectrical ServiceType = "electrical"
	ServiceTypePlumbing   ServiceType = "plumbing"
	ServiceTypeCarpentry  ServiceType = "carpentry"
	ServiceTypePainting   ServiceType = "painting"
	ServiceTypeCleaning   ServiceType = "cleaning"
	ServiceTypeOther      ServiceType = "other"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeElectrical, ServiceTypePlumbing, ServiceTypeCarpentry,
		ServiceTypePainting, ServiceTypeCleaning, ServiceTypeOther:
		return true
	}
	return false
}

// Priority is the client-declared urgency of a request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Request is a client-submitted maintenance need persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//
// Attachments hold object names owned by the external storage collaborator;
// the workflow never depends on their presence.

type Request struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"client_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	ServiceType ServiceType   `json:"service_type"`
	Priority    Priority      `json:"priority"`
	Status      RequestStatus `json:"status"`
	Attachments []string      `json:"attachments,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
