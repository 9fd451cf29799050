// Package payment contains the payment bridge domain model: the mapping
// between a Shopify order and a Dfin payment session, and the gateway
// contract for creating hosted payment sessions.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPaymentMappingNotFound = errors.New("payment: payment mapping not found")
	ErrPaymentAlreadyPaid     = errors.New("payment: payment already marked as paid")
	ErrPaymentInvalidOrderID  = errors.New("payment: invalid order ID")
	ErrPaymentInvalidPayID    = errors.New("payment: invalid pay ID")
)

// Status is the payment session lifecycle status
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// IsValid returns true for a known status value
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPaid
}

// Mapping pairs a Shopify order with a Dfin payment session. Created
// pending when the session is initiated; flipped to paid exactly once on a
// verified confirmation webhook.
type Mapping struct {
	ID        uuid.UUID
	OrderID   string
	PayID     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMapping creates a pending payment mapping
func NewMapping(orderID, payID string) (*Mapping, error) {
	if orderID == "" {
		return nil, ErrPaymentInvalidOrderID
	}
	if payID == "" {
		return nil, ErrPaymentInvalidPayID
	}
	now := time.Now()
	return &Mapping{
		ID:        uuid.New(),
		OrderID:   orderID,
		PayID:     payID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkPaid transitions pending -> paid. A second confirmation is rejected.
func (m *Mapping) MarkPaid() error {
	if m.Status == StatusPaid {
		return ErrPaymentAlreadyPaid
	}
	m.Status = StatusPaid
	m.UpdatedAt = time.Now()
	return nil
}

// MappingRepository persists payment mappings
type MappingRepository interface {
	FindByPayID(ctx context.Context, payID string) (*Mapping, error)
	FindByOrderID(ctx context.Context, orderID string) (*Mapping, error)
	Create(ctx context.Context, mapping *Mapping) error
	Update(ctx context.Context, mapping *Mapping) error
}

// ---------------------------------------------------------------------------
// Dfin gateway contract
// ---------------------------------------------------------------------------

// SessionRequest is a hosted payment session request to the Dfin gateway
type SessionRequest struct {
	FirstName         string
	LastName          string
	RequestFor        string
	CountryCode       string
	Amount            string
	RedirectURL       string
	RedirectTimeSecs  string
	IPAddress         string
	Metadata          string
	BillingAddress1   string
	BillingAddress2   string
	BillingCity       string
	BillingState      string
	BillingPostalCode string
	BillingCountry    string
	SendNotifications bool
	Source            string
}

// SessionResult is the created payment session
type SessionResult struct {
	PayID       string
	PaymentLink string
}

// Gateway creates hosted payment sessions with the Dfin API
type Gateway interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*SessionResult, error)
}
