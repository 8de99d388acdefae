package request

// CreateRequestRequest is the payload clients send to open a maintenance
// request. ClientID is only honored for admins; other actors always create
// requests for themselves.
type CreateRequestRequest struct {
	ClientID    string `json:"client_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
}
