package ports

import (
	"context"
	"time"

	"github.com/luminett/booking-api/internal/core/domain"
)

// QuoteRepository defines persistence operations for quotes and invoices.
type QuoteRepository interface {
	// Insert persists a new quote and assigns it the next sequential id.
	Insert(ctx context.Context, q *domain.Quote) error
	FindByID(ctx context.Context, id int64) (*domain.Quote, error)
	// List returns all quotes and invoices, newest first.
	List(ctx context.Context) ([]*domain.Quote, error)
	// ListByEmail returns the documents addressed to the given (normalized)
	// client email, newest first.
	ListByEmail(ctx context.Context, email string) ([]*domain.Quote, error)
	// UpdateStatus sets the quote's status and, when signedAt is non-nil,
	// records the signature timestamp. Returns the updated quote.
	UpdateStatus(ctx context.Context, id int64, status domain.QuoteStatus, signedAt *time.Time) (*domain.Quote, error)
	Delete(ctx context.Context, id int64) error
	// NextReference atomically advances and returns the per-(type, year)
	// reference sequence. Sequences are dense: 1, 2, 3, …
	NextReference(ctx context.Context, t domain.QuoteType, year int) (int64, error)
}
