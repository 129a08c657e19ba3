package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrClientNotFound = errors.New("client account not found")
var ErrClientExists = errors.New("client account already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingFields = errors.New("missing required fields")
var ErrWeakPassword = errors.New("password too short")
var ErrRateLimited = errors.New("too many login attempts")

// Client models a registered customer account.
type Client struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// NormalizeEmail lowercases and trims an email address. All client-scoped
// lookups go through this so matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
