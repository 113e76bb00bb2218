package domain

import "time"

// Canonical collaborator roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Collaborator invitation states.
const (
	CollabPending  = "pending"
	CollabAccepted = "accepted"
	CollabDeclined = "declined"
)

// Collaborator grants another user access to an event.
type Collaborator struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	InvitedAt  time.Time `json:"invitedAt"`
	AcceptedAt time.Time `json:"acceptedAt,omitempty"`
}

// NormalizeRole maps the legacy role spellings still present in stored
// rows (edit, view-only, view) onto the canonical set. Unknown values
// map to the empty string so callers can reject them.
func NormalizeRole(role string) string {
	switch role {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor, "edit":
		return RoleEditor
	case RoleViewer, "view-only", "view":
		return RoleViewer
	}
	return ""
}
