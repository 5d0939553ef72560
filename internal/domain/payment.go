// Package domain encodes the VIP payment attempt and the promotable listing
package domain

import (
	"strings"
	"time"
)

// PaymentStatus represents the current state of a payment attempt in its lifecycle
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusCompleted PaymentStatus = "COMPLETED"
	StatusFailed    PaymentStatus = "FAILED"
)

// MethodCard is the only payment method accepted for a VIP promotion.
const MethodCard = "card"

// PaymentAttempt is one persisted purchase attempt of a VIP promotion.
type PaymentAttempt struct {
	ID          int64
	ListingID   int64
	OwnerEmail  string
	AmountCents int64
	Currency    string
	Status      PaymentStatus

	PaymentMethod   string
	Card            *MaskedCard
	GatewayChargeID *string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewPaymentAttempt creates a PENDING attempt for the fixed VIP price.
// The ID is assigned by the store on insert.
func NewPaymentAttempt(listingID int64, ownerEmail, paymentMethod string, card *MaskedCard) (*PaymentAttempt, error) {
	if listingID <= 0 {
		return nil, NewMissingRequiredFieldError("item ID")
	}
	if strings.TrimSpace(ownerEmail) == "" {
		return nil, NewMissingRequiredFieldError("owner email")
	}

	return &PaymentAttempt{
		ListingID:     listingID,
		OwnerEmail:    ownerEmail,
		AmountCents:   VIPPrice.Amount,
		Currency:      VIPPrice.Currency,
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		Card:          card,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func (p *PaymentAttempt) Amount() Money {
	return Money{Amount: p.AmountCents, Currency: p.Currency}
}

// OwnedBy reports whether email is the identity that created the attempt.
func (p *PaymentAttempt) OwnedBy(email string) bool {
	return p.OwnerEmail != "" && p.OwnerEmail == email
}

// Complete moves a PENDING attempt to COMPLETED and stamps the completion time.
func (p *PaymentAttempt) Complete(chargeID string, completedAt time.Time) error {
	if err := p.transition(StatusCompleted); err != nil {
		return err
	}
	if chargeID != "" {
		p.GatewayChargeID = &chargeID
	}
	p.CompletedAt = &completedAt
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (p *PaymentAttempt) IsTerminal() bool {
	switch p.Status {
	case StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

func (p *PaymentAttempt) transition(target PaymentStatus) error {
	if p.Status != StatusPending {
		return NewInvalidTransitionError(p.Status, target)
	}
	switch target {
	case StatusCompleted, StatusFailed:
		p.Status = target
		return nil
	}
	return NewInvalidTransitionError(p.Status, target)
}

// IsCardMethod reports whether method selects card payment. An empty method
// defaults to card.
func IsCardMethod(method string) bool {
	return method == "" || strings.EqualFold(method, MethodCard)
}
