package domain

import (
	"errors"
	"fmt"
	"time"
)

// QuoteType discriminates between quotes and invoices.
type QuoteType string

const (
	TypeQuote   QuoteType = "devis"
	TypeInvoice QuoteType = "facture"
)

// IsValid reports whether t is a recognized document type.
func (t QuoteType) IsValid() bool {
	return t == TypeQuote || t == TypeInvoice
}

// ReferencePrefix returns the prefix used in human-readable references.
func (t QuoteType) ReferencePrefix() string {
	if t == TypeInvoice {
		return "FAC"
	}
	return "DEV"
}

// FormatReference builds the human-readable document reference, e.g. DEV-2025-001.
func FormatReference(t QuoteType, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", t.ReferencePrefix(), year, seq)
}

// QuoteStatus represents the lifecycle state of a quote or invoice.
type QuoteStatus string

const (
	QuoteSent   QuoteStatus = "sent"
	QuoteViewed QuoteStatus = "viewed"
	QuoteSigned QuoteStatus = "signed"
	QuotePaid   QuoteStatus = "paid"
)

// quoteTransitions defines the allowed state machine transitions. A direct
// sent→paid is legal so invoices can be settled without a signature step.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteSent:   {QuoteViewed, QuoteSigned, QuotePaid},
	QuoteViewed: {QuoteSigned, QuotePaid},
	QuoteSigned: {QuotePaid},
}

var ErrQuoteNotFound = errors.New("quote not found")
var ErrAlreadySigned = errors.New("quote already signed")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is one of the recognized quote statuses.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteSent, QuoteViewed, QuoteSigned, QuotePaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// QuoteItem is a single priced line on a quote or invoice.
type QuoteItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unit_price"`
}

// Quote is a priced document sent to a client. Quotes (devis) are signable
// electronically; invoices (facture) are not.
type Quote struct {
	ID          int64       `json:"id" bson:"_id"`
	Type        QuoteType   `json:"type" bson:"type"`
	Reference   string      `json:"reference" bson:"reference"`
	ClientEmail string      `json:"clientEmail" bson:"client_email"`
	ClientName  string      `json:"clientName" bson:"client_name"`
	ClientPhone string      `json:"clientPhone" bson:"client_phone"`
	Items       []QuoteItem `json:"items" bson:"items"`
	TaxRate     float64     `json:"taxRate" bson:"tax_rate"`
	Subtotal    float64     `json:"subtotal" bson:"subtotal"`
	TaxAmount   float64     `json:"taxAmount" bson:"tax_amount"`
	Total       float64     `json:"total" bson:"total"`
	Status      QuoteStatus `json:"status" bson:"status"`
	Notes       string      `json:"notes,omitempty" bson:"notes,omitempty"`
	ValidUntil  string      `json:"validUntil,omitempty" bson:"valid_until,omitempty"`
	OrderID     int64       `json:"orderId,omitempty" bson:"order_id,omitempty"`
	SignedAt    *time.Time  `json:"signedAt,omitempty" bson:"signed_at,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
}
