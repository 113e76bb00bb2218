package domain

import "time"

// Vendor payment states.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Vendor is a service contact in the user's vendor book. EventID is
// empty when the vendor is not attached to a specific event.
type Vendor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ServiceType   string    `json:"serviceType"`
	ContactPhone  string    `json:"contactPhone"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	EventID       string    `json:"eventId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ValidPaymentStatus reports whether s is a known payment state. The
// empty string is allowed since payment tracking is optional.
func ValidPaymentStatus(s string) bool {
	switch s {
	case "", PaymentPending, PaymentPaid:
		return true
	}
	return false
}
