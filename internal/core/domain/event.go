package domain

// Event names pushed to connected admin dashboards over the live channel.
const (
	EventNewOrder     = "new-order"
	EventOrderUpdated = "order-updated"
	EventOrderDeleted = "order-deleted"
	EventNewQuote     = "new-quote"
)

// ChangeEvent is a state-change notification delivered to dashboard sessions.
// Data carries the changed entity, or just its id for deletions.
type ChangeEvent struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}
