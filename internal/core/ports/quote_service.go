package ports

import (
	"context"

	"github.com/luminett/booking-api/internal/core/domain"
)

// QuoteItemInput is a single line item in a quote creation request.
type QuoteItemInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// CreateQuoteInput carries all data needed to create a quote or invoice.
// Financial totals are computed server-side from Items and TaxRate.
type CreateQuoteInput struct {
	Type        string
	ClientEmail string
	ClientName  string
	ClientPhone string
	Items       []QuoteItemInput
	TaxRate     float64
	Notes       string
	ValidUntil  string
	OrderID     int64
}

// QuoteService defines use-case operations for quotes and invoices.
type QuoteService interface {
	Create(ctx context.Context, input CreateQuoteInput) (*domain.Quote, error)
	List(ctx context.Context) ([]*domain.Quote, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Quote, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Quote, error)
	// Sign records the one-time electronic signature of a quote. Only the
	// addressed client may sign, and only once.
	Sign(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error)
	Delete(ctx context.Context, id int64) error
}
