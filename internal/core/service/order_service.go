package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/luminett/booking-api/internal/core/domain"
	"github.com/luminett/booking-api/internal/core/mail"
	"github.com/luminett/booking-api/internal/core/ports"
)

// OrderService implements order creation, listing, status transitions,
// deletion and dashboard stats. Every mutation persists first, then fires the
// live fanout and (for creations) the notification emails; neither side
// effect can fail the request.
type OrderService struct {
	repo     ports.OrderRepository
	notifier ports.Notifier
	mailer   ports.MailEnqueuer
	compose  mail.Composer
	log      zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, notifier ports.Notifier, mailer ports.MailEnqueuer, compose mail.Composer, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, mailer: mailer, compose: compose, log: log}
}

// Create registers a public order submission. New orders always start pending.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	order := &domain.Order{
		Service:     input.Service,
		ClientName:  input.ClientName,
		ClientEmail: domain.NormalizeEmail(input.ClientEmail),
		ClientPhone: input.ClientPhone,
		Address:     input.Address,
		Date:        input.Date,
		TimeSlot:    input.TimeSlot,
		SurfaceArea: input.SurfaceArea,
		Notes:       input.Notes,
		Status:      domain.OrderPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.log.Info().Int64("order_id", order.ID).Str("service", order.Service).Msg("order created")

	s.notifier.Broadcast(domain.ChangeEvent{Name: domain.EventNewOrder, Data: order})
	for _, msg := range s.compose.NewOrderMessages(order) {
		s.mailer.Enqueue(msg)
	}

	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return s.repo.ListByEmail(ctx, domain.NormalizeEmail(email))
}

// UpdateStatus transitions an order through the status state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	target := domain.OrderStatus(status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, target)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("order_id", id).Str("status", status).Msg("order status updated")
	s.notifier.Broadcast(domain.ChangeEvent{Name: domain.EventOrderUpdated, Data: updated})

	return updated, nil
}

// Delete removes an order. Deleting an absent id returns ErrOrderNotFound.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("order_id", id).Msg("order deleted")
	s.notifier.Broadcast(domain.ChangeEvent{
		Name: domain.EventOrderDeleted,
		Data: map[string]int64{"id": id},
	})

	return nil
}

// Stats aggregates the dashboard counters. "Today" is bounded by the local
// calendar date, matching what the dashboard displays.
func (s *OrderService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.Stats(ctx, startOfToday)
}
