package services

import "github.com/DanielPopoola/webshop-vip/internal/domain"

type CreatePaymentCommand struct {
	ListingID     int64
	OwnerEmail    string
	PaymentMethod string
	Card          *domain.CardDetails
}

type CompletePaymentCommand struct {
	PaymentID  int64
	OwnerEmail string
	// GatewayToken is the gateway's payment method reference. Empty means no
	// charge is attempted.
	GatewayToken string
}

type ActivationCommand struct {
	ListingID  int64
	OwnerEmail string
}
