package ports

import (
	"context"

	"github.com/luminett/booking-api/internal/core/domain"
)

// RegisterClientInput carries the self-registration payload.
type RegisterClientInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthService issues and validates sessions for the two principal kinds.
type AuthService interface {
	// AdminLogin checks the static administrator credential pair and returns
	// a 24-hour session token. remoteIP keys the login rate limiter.
	AdminLogin(ctx context.Context, email, password, remoteIP string) (string, error)
	// ClientLogin authenticates a registered account and returns a 7-day
	// session token.
	ClientLogin(ctx context.Context, email, password, remoteIP string) (string, *domain.Client, error)
	// RegisterClient creates an account and returns a session token
	// immediately; there is no separate verification step.
	RegisterClient(ctx context.Context, input RegisterClientInput) (string, *domain.Client, error)
}
