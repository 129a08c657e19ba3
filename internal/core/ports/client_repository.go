package ports

import (
	"context"

	"github.com/luminett/booking-api/internal/core/domain"
)

// ClientRepository defines persistence operations for client accounts.
// Emails are stored normalized (lowercase, trimmed) and act as a unique key.
type ClientRepository interface {
	// Insert persists a new account and assigns it the next sequential id.
	// Returns domain.ErrClientExists when the email is already registered.
	Insert(ctx context.Context, c *domain.Client) error
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
}
