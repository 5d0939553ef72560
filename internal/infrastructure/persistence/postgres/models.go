package postgres

import (
	"time"
)

// PaymentModel mirrors a vip_payments row.
type PaymentModel struct {
	ID              int64
	ItemID          int64
	OwnerEmail      string
	AmountCents     int64
	Currency        string
	Status          string
	PaymentMethod   string
	CardLastFour    *string
	CardHolder      *string
	CardExpiry      *string
	GatewayChargeID *string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// ListingModel mirrors the columns of items the promotion flow reads.
type ListingModel struct {
	ID         int64
	Title      string
	OwnerEmail string
	IsVIP      bool
}
