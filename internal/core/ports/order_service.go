package ports

import (
	"context"

	"github.com/luminett/booking-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to create a new order.
type CreateOrderInput struct {
	Service     string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Address     string
	Date        string
	TimeSlot    string
	SurfaceArea string
	Notes       string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	// UpdateStatus transitions an order to the target status. The target must
	// be a recognized status value and a legal transition from the current one.
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}
