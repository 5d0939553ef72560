package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

type CreatePaymentService struct {
	tx     application.TransactionManager
	logger *slog.Logger
}

func NewCreatePaymentService(tx application.TransactionManager, logger *slog.Logger) *CreatePaymentService {
	return &CreatePaymentService{
		tx:     tx,
		logger: logger,
	}
}

// CreatePayment opens a PENDING attempt for the listing. Every check and the
// insert run under the listing row lock, so two concurrent calls cannot both
// pass the pending check.
func (s *CreatePaymentService) CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (*domain.PaymentAttempt, error) {
	var created *domain.PaymentAttempt

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

		if listing.IsPromoted {
			return application.NewAlreadyPromotedError()
		}

		pending, err := payments.ExistsWithStatus(ctx, listing.ID, domain.StatusPending)
		if err != nil {
			return application.NewInternalError(err)
		}
		if pending {
			return application.NewPaymentPendingError(nil)
		}

		card, err := validatePaymentDetails(cmd)
		if err != nil {
			return application.NewValidationError(err)
		}

		attempt, err := domain.NewPaymentAttempt(listing.ID, cmd.OwnerEmail, domain.MethodCard, card)
		if err != nil {
			return application.NewValidationError(err)
		}

		if err := payments.Create(ctx, attempt); err != nil {
			if errors.Is(err, domain.ErrDuplicatePendingPayment) {
				return application.NewPaymentPendingError(err)
			}
			return application.NewInternalError(err)
		}

		created = attempt
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "create payment rejected", err, "item_id", cmd.ListingID)
	}

	paymentsCreatedCounter.Inc()
	s.logger.InfoContext(ctx, "vip payment created",
		"payment_id", created.ID,
		"item_id", created.ListingID,
		"amount", created.Amount().String(),
		"currency", created.Currency,
	)

	return created, nil
}

func validatePaymentDetails(cmd CreatePaymentCommand) (*domain.MaskedCard, error) {
	if !domain.IsCardMethod(cmd.PaymentMethod) {
		return nil, domain.ErrUnsupportedMethod
	}
	if cmd.Card == nil {
		return nil, domain.NewMissingRequiredFieldError("card details")
	}
	if err := cmd.Card.Validate(); err != nil {
		return nil, err
	}
	return cmd.Card.Mask(), nil
}

func (s *CreatePaymentService) fail(ctx context.Context, msg string, err error, args ...any) error {
	return logServiceError(ctx, s.logger, msg, err, args...)
}

// logServiceError normalizes err to a ServiceError and logs it at a level
// matching its kind.
func logServiceError(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) error {
	svcErr, ok := application.IsServiceError(err)
	if !ok {
		svcErr = application.NewInternalError(err)
	}

	attrs := append([]any{"code", svcErr.Code, "error", err}, args...)
	if svcErr.IsBusiness() {
		businessRejectedCounter.Inc()
		logger.InfoContext(ctx, msg, attrs...)
	} else {
		internalFailureCounter.Inc()
		logger.ErrorContext(ctx, msg, attrs...)
	}
	return svcErr
}
