package ports

import (
	"context"
	"time"

	"github.com/luminett/booking-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Insert persists a new order and assigns it the next sequential id.
	Insert(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns all orders, newest first.
	List(ctx context.Context) ([]*domain.Order, error)
	// ListByEmail returns the orders submitted with the given (normalized)
	// client email, newest first.
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	// UpdateStatus sets the order's status and returns the updated order.
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	// Stats aggregates dashboard counters. startOfToday bounds the
	// created-today count by local calendar date.
	Stats(ctx context.Context, startOfToday time.Time) (*domain.OrderStats, error)
}
