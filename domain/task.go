package domain

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a single checklist item. EventID is empty for
// standalone tasks not attached to any event.
type Task struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed,omitempty"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
