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

// QuoteService implements quote/invoice creation, status updates, electronic
// signature and deletion. Totals and references are computed here once at
// creation and stored; reads never recompute them.
type QuoteService struct {
	repo     ports.QuoteRepository
	notifier ports.Notifier
	mailer   ports.MailEnqueuer
	compose  mail.Composer
	log      zerolog.Logger
}

func NewQuoteService(repo ports.QuoteRepository, notifier ports.Notifier, mailer ports.MailEnqueuer, compose mail.Composer, log zerolog.Logger) *QuoteService {
	return &QuoteService{repo: repo, notifier: notifier, mailer: mailer, compose: compose, log: log}
}

// Create issues a new quote or invoice, computes its totals and reference,
// persists it, and notifies the client by email.
func (s *QuoteService) Create(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error) {
	docType := domain.QuoteType(input.Type)
	if !docType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Type)
	}

	now := time.Now().UTC()
	seq, err := s.repo.NextReference(ctx, docType, now.Year())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to allocate document reference")
		return nil, err
	}

	items := make([]domain.QuoteItem, len(input.Items))
	var subtotal float64
	for i, item := range input.Items {
		items[i] = domain.QuoteItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		subtotal += item.Quantity * item.UnitPrice
	}
	taxAmount := subtotal * input.TaxRate / 100

	quote := &domain.Quote{
		Type:        docType,
		Reference:   domain.FormatReference(docType, now.Year(), seq),
		ClientEmail: domain.NormalizeEmail(input.ClientEmail),
		ClientName:  input.ClientName,
		ClientPhone: input.ClientPhone,
		Items:       items,
		TaxRate:     input.TaxRate,
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		Total:       subtotal + taxAmount,
		Status:      domain.QuoteSent,
		Notes:       input.Notes,
		ValidUntil:  input.ValidUntil,
		OrderID:     input.OrderID,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, quote); err != nil {
		s.log.Error().Err(err).Msg("failed to create quote")
		return nil, err
	}

	s.log.Info().Int64("quote_id", quote.ID).Str("reference", quote.Reference).Msg("quote created")

	s.notifier.Broadcast(domain.ChangeEvent{Name: domain.EventNewQuote, Data: quote})
	s.mailer.Enqueue(s.compose.NewQuoteMessage(quote))

	return quote, nil
}

func (s *QuoteService) List(ctx context.Context) ([]*domain.Quote, error) {
	return s.repo.List(ctx)
}

func (s *QuoteService) ListByEmail(ctx context.Context, email string) ([]*domain.Quote, error) {
	return s.repo.ListByEmail(ctx, domain.NormalizeEmail(email))
}

// UpdateStatus transitions a document through the status state machine.
// Entering the signed state records the signature timestamp.
func (s *QuoteService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Quote, error) {
	target := domain.QuoteStatus(status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, quote.Status, target)
	}

	var signedAt *time.Time
	if target == domain.QuoteSigned && quote.SignedAt == nil {
		now := time.Now().UTC()
		signedAt = &now
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target, signedAt)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("quote_id", id).Str("status", status).Msg("quote status updated")
	return updated, nil
}

// Sign records the client's one-time electronic signature. Guards, in order:
// the quote must exist, the requester must be the addressed client
// (case-insensitive email match), the quote must not be signed already, and
// the current status must still allow the signed transition (paid is terminal).
func (s *QuoteService) Sign(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.NormalizeEmail(quote.ClientEmail) != domain.NormalizeEmail(requesterEmail) {
		return nil, domain.ErrForbidden
	}
	if quote.Status == domain.QuoteSigned {
		return nil, domain.ErrAlreadySigned
	}
	if !quote.Status.CanTransitionTo(domain.QuoteSigned) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, quote.Status, domain.QuoteSigned)
	}

	now := time.Now().UTC()
	signed, err := s.repo.UpdateStatus(ctx, id, domain.QuoteSigned, &now)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("quote_id", id).Str("reference", signed.Reference).Msg("quote signed")
	s.mailer.Enqueue(s.compose.SignatureMessage(signed))

	return signed, nil
}

// Delete removes a document. Deleting an absent id returns ErrQuoteNotFound.
func (s *QuoteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("quote_id", id).Msg("quote deleted")
	return nil
}
