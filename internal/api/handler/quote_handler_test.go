package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luminett/booking-api/internal/core/domain"
	"github.com/luminett/booking-api/internal/core/ports"
)

type stubQuoteService struct {
	createFn       func(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error)
	listFn         func(ctx context.Context) ([]*domain.Quote, error)
	listByEmailFn  func(ctx context.Context, email string) ([]*domain.Quote, error)
	updateStatusFn func(ctx context.Context, id int64, status string) (*domain.Quote, error)
	signFn         func(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error)
	deleteFn       func(ctx context.Context, id int64) error
}

func (s *stubQuoteService) Create(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error) {
	return s.createFn(ctx, input)
}
func (s *stubQuoteService) List(ctx context.Context) ([]*domain.Quote, error) {
	return s.listFn(ctx)
}
func (s *stubQuoteService) ListByEmail(ctx context.Context, email string) ([]*domain.Quote, error) {
	return s.listByEmailFn(ctx, email)
}
func (s *stubQuoteService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Quote, error) {
	return s.updateStatusFn(ctx, id, status)
}
func (s *stubQuoteService) Sign(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error) {
	return s.signFn(ctx, id, requesterEmail)
}
func (s *stubQuoteService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

const validQuoteBody = `{
	"type": "devis",
	"clientName": "Jean Dupont",
	"clientEmail": "jean@example.com",
	"items": [
		{"description": "Nettoyage complet", "quantity": 2, "unitPrice": 50}
	],
	"taxRate": 20
}`

func TestQuoteHandler_Create_Success(t *testing.T) {
	stub := &stubQuoteService{
		createFn: func(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error) {
			if input.Type != "devis" || len(input.Items) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Items[0].Quantity != 2 || input.Items[0].UnitPrice != 50 {
				t.Fatalf("item not mapped: %+v", input.Items[0])
			}
			return &domain.Quote{
				ID: 1, Type: domain.TypeQuote, Reference: "DEV-2026-001",
				Status: domain.QuoteSent, Total: 120,
			}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/quotes", validQuoteBody)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["reference"] != "DEV-2026-001" {
		t.Fatalf("expected reference, got %v", resp["reference"])
	}
}

func TestQuoteHandler_Create_RejectsEmptyItems(t *testing.T) {
	stub := &stubQuoteService{
		createFn: func(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/quotes",
		`{"type":"devis","clientName":"Jean","clientEmail":"jean@example.com","items":[]}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty items, got %v", err)
	}
}

func TestQuoteHandler_Create_RejectsUnknownType(t *testing.T) {
	stub := &stubQuoteService{
		createFn: func(ctx context.Context, input ports.CreateQuoteInput) (*domain.Quote, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/quotes",
		`{"type":"avoir","clientName":"Jean","clientEmail":"jean@example.com","items":[{"description":"x","quantity":1,"unitPrice":10}]}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %v", err)
	}
}

func TestQuoteHandler_Sign_UsesTokenEmail(t *testing.T) {
	stub := &stubQuoteService{
		signFn: func(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error) {
			if id != 5 || requesterEmail != "jean@example.com" {
				t.Fatalf("unexpected args: %d %s", id, requesterEmail)
			}
			return &domain.Quote{ID: id, Status: domain.QuoteSigned}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/client/quotes/5/sign", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("role", domain.RoleClient)
	c.Set("email", "jean@example.com")

	if err := h.Sign(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "signed" {
		t.Fatalf("expected signed status, got %v", resp["status"])
	}
}

func TestQuoteHandler_Sign_RequiresClientIdentity(t *testing.T) {
	stub := &stubQuoteService{
		signFn: func(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/client/quotes/5/sign", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("role", domain.RoleClient)
	// no email claim

	err := h.Sign(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestQuoteHandler_Sign_PropagatesAlreadySigned(t *testing.T) {
	stub := &stubQuoteService{
		signFn: func(ctx context.Context, id int64, requesterEmail string) (*domain.Quote, error) {
			return nil, domain.ErrAlreadySigned
		},
	}
	h := NewQuoteHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/client/quotes/5/sign", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("role", domain.RoleClient)
	c.Set("email", "jean@example.com")

	if err := h.Sign(c); !errors.Is(err, domain.ErrAlreadySigned) {
		t.Fatalf("expected ErrAlreadySigned, got %v", err)
	}
}

func TestQuoteHandler_UpdateStatus_Success(t *testing.T) {
	stub := &stubQuoteService{
		updateStatusFn: func(ctx context.Context, id int64, status string) (*domain.Quote, error) {
			if id != 9 || status != "paid" {
				t.Fatalf("unexpected args: %d %s", id, status)
			}
			return &domain.Quote{ID: id, Status: domain.QuotePaid}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/quotes/9/status", `{"status":"paid"}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestQuoteHandler_ListMine_UsesTokenEmail(t *testing.T) {
	stub := &stubQuoteService{
		listByEmailFn: func(ctx context.Context, email string) ([]*domain.Quote, error) {
			if email != "jean@example.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return []*domain.Quote{{ID: 1}}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/client/quotes", "")
	c.Set("role", domain.RoleClient)
	c.Set("email", "jean@example.com")

	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
