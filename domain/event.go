package domain

import "time"

// Event is the read model for a planned event.
type Event struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time,omitempty"`
	Venue          string    `json:"venue,omitempty"`
	ExpectedGuests int       `json:"expectedGuests"`
	Budget         float64   `json:"budget"`
	CreatedAt      time.Time `json:"createdAt"`
}
