package rest

import (
	"encoding/json"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// PaymentView is the wire form of a payment attempt. Card data is limited to
// the last four digits.
type PaymentView struct {
	PaymentID       int64       `json:"paymentId"`
	ItemID          int64       `json:"itemId"`
	OwnerEmail      string      `json:"ownerEmail"`
	Amount          json.Number `json:"amount"`
	Currency        string      `json:"currency"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	CardLastFour    string      `json:"cardLastFour,omitempty"`
	GatewayChargeID string      `json:"gatewayChargeId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}

type ListingView struct {
	ItemID int64 `json:"itemId"`
	IsVIP  bool  `json:"isVip"`
}

// Amount renders money as a JSON number with two decimals.
func Amount(m domain.Money) json.Number {
	return json.Number(m.String())
}

func ToPaymentView(p *domain.PaymentAttempt) PaymentView {
	view := PaymentView{
		PaymentID:     p.ID,
		ItemID:        p.ListingID,
		OwnerEmail:    p.OwnerEmail,
		Amount:        Amount(p.Amount()),
		Currency:      p.Currency,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
		CompletedAt:   p.CompletedAt,
	}

	if p.Card != nil {
		view.CardLastFour = p.Card.LastFour
	}
	if p.GatewayChargeID != nil {
		view.GatewayChargeID = *p.GatewayChargeID
	}

	return view
}

func ToPaymentViews(payments []*domain.PaymentAttempt) []PaymentView {
	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, ToPaymentView(p))
	}
	return views
}

func ToListingView(l *domain.Listing) ListingView {
	return ListingView{ItemID: l.ID, IsVIP: l.IsPromoted}
}
