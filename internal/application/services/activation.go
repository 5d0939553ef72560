package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// PromotionStatus summarizes the promotion state of one listing.
type PromotionStatus struct {
	ListingID           int64
	Promoted            bool
	HasCompletedPayment bool
	PendingPaymentID    *int64
}

// ActivationService flips the promotion flag outside the payment flow. Activation
// still requires a completed payment for the listing.
type ActivationService struct {
	payments application.PaymentRepository
	listings application.ListingRepository
	tx       application.TransactionManager
	logger   *slog.Logger
}

func NewActivationService(
	payments application.PaymentRepository,
	listings application.ListingRepository,
	tx application.TransactionManager,
	logger *slog.Logger,
) *ActivationService {
	return &ActivationService{
		payments: payments,
		listings: listings,
		tx:       tx,
		logger:   logger,
	}
}

func (s *ActivationService) Activate(ctx context.Context, cmd ActivationCommand) (*domain.Listing, error) {
	listing, err := s.setPromoted(ctx, cmd, true)
	if err != nil {
		return nil, logServiceError(ctx, s.logger, "vip activation rejected", err, "item_id", cmd.ListingID)
	}

	activationsCounter.Inc()
	s.logger.InfoContext(ctx, "vip status activated", "item_id", listing.ID)
	return listing, nil
}

func (s *ActivationService) Deactivate(ctx context.Context, cmd ActivationCommand) (*domain.Listing, error) {
	listing, err := s.setPromoted(ctx, cmd, false)
	if err != nil {
		return nil, logServiceError(ctx, s.logger, "vip deactivation rejected", err, "item_id", cmd.ListingID)
	}

	deactivationsCounter.Inc()
	s.logger.InfoContext(ctx, "vip status deactivated", "item_id", listing.ID)
	return listing, nil
}

func (s *ActivationService) setPromoted(ctx context.Context, cmd ActivationCommand, promoted bool) (*domain.Listing, error) {
	var result *domain.Listing

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, payments application.PaymentRepository, listings application.ListingRepository) error {
		listing, err := listings.FindByIDForUpdate(ctx, cmd.ListingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return application.NewItemNotFoundError(err)
			}
			return application.NewInternalError(err)
		}

		if !listing.OwnedBy(cmd.OwnerEmail) {
			return application.NewItemForbiddenError()
		}

		if promoted {
			paid, err := payments.ExistsWithStatus(ctx, listing.ID, domain.StatusCompleted)
			if err != nil {
				return application.NewInternalError(err)
			}
			if !paid {
				return application.NewPaymentRequiredError()
			}
			listing.Promote()
		} else {
			listing.Demote()
		}

		if err := listings.Update(ctx, listing); err != nil {
			return application.NewInternalError(err)
		}

		result = listing
		return nil
	})

	return result, err
}

func (s *ActivationService) Status(ctx context.Context, listingID int64) (*PromotionStatus, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, application.NewItemNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}

	paid, err := s.payments.ExistsWithStatus(ctx, listingID, domain.StatusCompleted)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	pending, err := s.payments.FindPending(ctx, listingID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	status := &PromotionStatus{
		ListingID:           listing.ID,
		Promoted:            listing.IsPromoted,
		HasCompletedPayment: paid,
	}
	if pending != nil {
		status.PendingPaymentID = &pending.ID
	}
	return status, nil
}
