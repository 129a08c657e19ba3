package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a booking order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions defines the allowed state machine transitions.
// Cancelled orders can be reopened back to pending.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderCompleted},
	OrderCancelled:  {OrderPending},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidStatus = errors.New("invalid status value")
var ErrInvalidTransition = errors.New("invalid status transition")

// IsValid reports whether s is one of the recognized order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceCategories is the closed set of bookable cleaning services.
var ServiceCategories = []string{"conteneurs", "domicile", "bureau", "travaux", "vitres"}

// ServiceLabels maps a service category to its display name, used in emails.
var ServiceLabels = map[string]string{
	"conteneurs": "Nettoyage de conteneurs",
	"domicile":   "Nettoyage domicile",
	"bureau":     "Nettoyage bureau / local",
	"travaux":    "Nettoyage après travaux",
	"vitres":     "Vitres / façades",
}

// Order is a customer's booking request for a cleaning service.
type Order struct {
	ID          int64       `json:"id" bson:"_id"`
	Service     string      `json:"service" bson:"service"`
	ClientName  string      `json:"clientName" bson:"client_name"`
	ClientEmail string      `json:"clientEmail" bson:"client_email"`
	ClientPhone string      `json:"clientPhone" bson:"client_phone"`
	Address     string      `json:"address" bson:"address"`
	Date        string      `json:"date" bson:"date"`
	TimeSlot    string      `json:"timeSlot" bson:"time_slot"`
	SurfaceArea string      `json:"surfaceArea,omitempty" bson:"surface_area,omitempty"`
	Notes       string      `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      OrderStatus `json:"status" bson:"status"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
}

// OrderStats is the aggregate view shown on the admin dashboard.
type OrderStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Today     int64 `json:"today"`
	Completed int64 `json:"completed"`
}
