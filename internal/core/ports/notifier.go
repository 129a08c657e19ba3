package ports

import (
	"context"

	"github.com/luminett/booking-api/internal/core/domain"
)

// Notifier pushes a state-change event to every connected dashboard session.
// Delivery is best-effort and at-most-once; sessions that connect later never
// see earlier events.
type Notifier interface {
	Broadcast(event domain.ChangeEvent)
}

// MailMessage is a single outbound notification email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// MailEnqueuer hands a message to the asynchronous mail dispatcher. Enqueue
// returns immediately; delivery failures are logged, never surfaced.
type MailEnqueuer interface {
	Enqueue(msg MailMessage)
}

// LoginLimiter tracks failed login attempts per client network address.
type LoginLimiter interface {
	// Check returns a domain.ErrRateLimited-wrapped error while the key is
	// locked out, including the remaining wait rounded up to whole minutes.
	Check(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Clear(ctx context.Context, key string) error
}
