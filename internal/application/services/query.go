package services

import (
	"context"
	"errors"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type QueryService struct {
	payments application.PaymentRepository
	listings application.ListingRepository
}

func NewQueryService(
	payments application.PaymentRepository,
	listings application.ListingRepository,
) *QueryService {
	return &QueryService{
		payments: payments,
		listings: listings,
	}
}

// GetPrice returns the fixed promotion price.
func (s *QueryService) GetPrice() domain.Money {
	return domain.VIPPrice
}

func (s *QueryService) HasCompletedPayment(ctx context.Context, listingID int64) (bool, error) {
	ok, err := s.payments.ExistsWithStatus(ctx, listingID, domain.StatusCompleted)
	if err != nil {
		return false, application.NewInternalError(err)
	}
	return ok, nil
}

func (s *QueryService) GetPayment(ctx context.Context, paymentID int64, ownerEmail string) (*domain.PaymentAttempt, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, application.NewPaymentNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	if !p.OwnedBy(ownerEmail) {
		return nil, application.NewPaymentForbiddenError()
	}
	return p, nil
}

// ListPayments returns an owner's attempts, newest first.
func (s *QueryService) ListPayments(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	payments, err := s.payments.FindByOwnerEmail(ctx, ownerEmail, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return payments, nil
}

// ListPaymentsForListing returns the audit trail of one listing to its owner.
func (s *QueryService) ListPaymentsForListing(ctx context.Context, listingID int64, ownerEmail string) ([]*domain.PaymentAttempt, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, application.NewItemNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	if !listing.OwnedBy(ownerEmail) {
		return nil, application.NewItemForbiddenError()
	}

	payments, err := s.payments.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return payments, nil
}
