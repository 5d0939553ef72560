package postgres

import (
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// toDomainPayment: maps db model to domain entity
func toDomainPayment(m PaymentModel) *domain.PaymentAttempt {
	p := &domain.PaymentAttempt{
		ID:              m.ID,
		ListingID:       m.ItemID,
		OwnerEmail:      m.OwnerEmail,
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		Status:          domain.PaymentStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		GatewayChargeID: m.GatewayChargeID,
		CreatedAt:       m.CreatedAt,
		CompletedAt:     m.CompletedAt,
	}
	if m.CardLastFour != nil || m.CardHolder != nil || m.CardExpiry != nil {
		p.Card = &domain.MaskedCard{
			LastFour: deref(m.CardLastFour),
			Holder:   deref(m.CardHolder),
			Expiry:   deref(m.CardExpiry),
		}
	}
	return p
}

// toPaymentModel: maps domain entity to db model
func toPaymentModel(p *domain.PaymentAttempt) *PaymentModel {
	m := &PaymentModel{
		ID:              p.ID,
		ItemID:          p.ListingID,
		OwnerEmail:      p.OwnerEmail,
		AmountCents:     p.AmountCents,
		Currency:        p.Currency,
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		GatewayChargeID: p.GatewayChargeID,
		CreatedAt:       p.CreatedAt,
		CompletedAt:     p.CompletedAt,
	}
	if m.PaymentMethod == "" {
		m.PaymentMethod = domain.MethodCard
	}
	if p.Card != nil {
		m.CardLastFour = &p.Card.LastFour
		m.CardHolder = &p.Card.Holder
		m.CardExpiry = &p.Card.Expiry
	}
	return m
}

func toDomainListing(m ListingModel) *domain.Listing {
	return &domain.Listing{
		ID:         m.ID,
		Title:      m.Title,
		OwnerEmail: m.OwnerEmail,
		IsPromoted: m.IsVIP,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
