package handlers

import (
	"encoding/json"

	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest"
)

// Card fields are checked by the service after ownership, never here.
type CreatePaymentRequest struct {
	ItemID        int64  `json:"itemId" validate:"required,gt=0"`
	OwnerEmail    string `json:"ownerEmail" validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
	CardNumber    string `json:"cardNumber"`
	CardHolder    string `json:"cardHolder"`
	ExpiryDate    string `json:"expiryDate"`
}

type CompletePaymentRequest struct {
	PaymentID       int64  `json:"paymentId" validate:"required,gt=0"`
	OwnerEmail      string `json:"ownerEmail" validate:"required"`
	PaymentMethodID string `json:"paymentMethodId"`
}

type ActivationRequest struct {
	ItemID     int64  `json:"itemId" validate:"required,gt=0"`
	OwnerEmail string `json:"ownerEmail" validate:"required"`
}

type CreatePaymentResponse struct {
	Success   bool        `json:"success"`
	PaymentID int64       `json:"paymentId"`
	ItemID    int64       `json:"itemId"`
	Amount    json.Number `json:"amount"`
	Status    string      `json:"status"`
	Message   string      `json:"message"`
}

type CompletePaymentResponse struct {
	Success   bool   `json:"success"`
	PaymentID int64  `json:"paymentId"`
	ItemID    int64  `json:"itemId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type PriceResponse struct {
	Success  bool        `json:"success"`
	Price    json.Number `json:"price"`
	Currency string      `json:"currency"`
}

type PaymentResponse struct {
	Success bool `json:"success"`
	rest.PaymentView
}

type PaymentHistoryResponse struct {
	Success  bool               `json:"success"`
	Payments []rest.PaymentView `json:"payments"`
}

type ListingResponse struct {
	Success bool `json:"success"`
	rest.ListingView
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Success             bool   `json:"success"`
	ItemID              int64  `json:"itemId"`
	IsVIP               bool   `json:"isVip"`
	HasCompletedPayment bool   `json:"hasCompletedPayment"`
	PendingPaymentID    *int64 `json:"pendingPaymentId,omitempty"`
}
