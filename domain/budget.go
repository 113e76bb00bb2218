package domain

// Sync states for optimistically applied list items. A client applies a
// mutation locally as ItemPending, promotes it to ItemConfirmed when the
// store acknowledges, and marks it ItemFailed for rollback otherwise.
const (
	ItemPending   = "pending"
	ItemConfirmed = "confirmed"
	ItemFailed    = "failed"
)

// BudgetItem is one line in an event budget.
type BudgetItem struct {
	ID        string  `json:"id"`
	EventID   string  `json:"eventId"`
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	SyncState string  `json:"syncState,omitempty"`
}

// BudgetSummary aggregates a budget item list. Remaining may be
// negative; over-budget is a displayed state, never clamped.
type BudgetSummary struct {
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// SummarizeBudget totals the given items. Items still pending or failed
// count toward the summary so the display follows the local list.
func SummarizeBudget(items []BudgetItem) BudgetSummary {
	var sum BudgetSummary
	for _, it := range items {
		sum.Allocated += it.Allocated
		sum.Spent += it.Spent
	}
	sum.Remaining = sum.Allocated - sum.Spent
	return sum
}
