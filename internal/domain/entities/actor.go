package entities

// Role is the closed set of principal roles known to the workflow.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleTechnician Role = "technician"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleTechnician:
		return true
	}
	return false
}

// ActorContext identifies the acting principal for a single call.
//
// It is resolved once at the boundary (from the bearer token) and threaded
// explicitly through every workflow operation; nothing in the core reads an
// ambient session. For non-admin roles exactly one owner id is populated.

type ActorContext struct {
	UserID       string
	Role         Role
	ClientID     string
	TechnicianID string
}

func (a ActorContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// OwnsClient reports whether the actor is the client identified by id.
func (a ActorContext) OwnsClient(id string) bool {
	return a.Role == RoleClient && a.ClientID != "" && a.ClientID == id
}

// IsAssignedTechnician reports whether the actor is the technician
// identified by id.
func (a ActorContext) IsAssignedTechnician(id string) bool {
	return a.Role == RoleTechnician && a.TechnicianID != "" && a.TechnicianID == id
}
