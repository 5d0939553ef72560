package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

type CompletePaymentService struct {
	payments application.PaymentRepository
	tx       application.TransactionManager
	gateway  application.GatewayClient
	logger   *slog.Logger
	now      func() time.Time
}

func NewCompletePaymentService(
	payments application.PaymentRepository,
	tx application.TransactionManager,
	gateway application.GatewayClient,
	logger *slog.Logger,
) *CompletePaymentService {
	return &CompletePaymentService{
		payments: payments,
		tx:       tx,
		gateway:  gateway,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IdempotencyKey is the gateway idempotency key for an attempt. Retried
// completions of the same attempt reuse it.
func IdempotencyKey(paymentID int64) string {
	return fmt.Sprintf("vip-payment-%d", paymentID)
}

// CompletePayment charges the gateway and then, in one transaction, promotes the
// listing and marks the attempt COMPLETED. A failed charge writes nothing, so the
// attempt stays PENDING and the client may retry.
func (s *CompletePaymentService) CompletePayment(ctx context.Context, cmd CompletePaymentCommand) (*domain.PaymentAttempt, error) {
	attempt, err := s.payments.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, s.fail(ctx, application.NewPaymentNotFoundError(err), cmd)
		}
		return nil, s.fail(ctx, application.NewInternalError(err), cmd)
	}

	if !attempt.OwnedBy(cmd.OwnerEmail) {
		return nil, s.fail(ctx, application.NewPaymentForbiddenError(), cmd)
	}

	if err := checkCompletable(attempt); err != nil {
		return nil, s.fail(ctx, err, cmd)
	}

	chargeID, err := s.charge(ctx, attempt, cmd.GatewayToken)
	if err != nil {
		gatewayFailureCounter.Inc()
		return nil, s.fail(ctx, application.NewGatewayError(err), cmd)
	}

	var completed *domain.PaymentAttempt
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, payments application.PaymentRepository, listings application.ListingRepository) error {
		listing, err := listings.FindByIDForUpdate(ctx, attempt.ListingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return application.NewItemNotFoundError(err)
			}
			return application.NewInternalError(err)
		}

		locked, err := payments.FindByIDForUpdate(ctx, attempt.ID)
		if err != nil {
			return application.NewInternalError(err)
		}

		// Another request may have completed the attempt while we were charging.
		if err := checkCompletable(locked); err != nil {
			return err
		}

		listing.Promote()
		if err := listings.Update(ctx, listing); err != nil {
			return application.NewInternalError(err)
		}

		if err := locked.Complete(chargeID, s.now()); err != nil {
			return application.NewInternalError(err)
		}
		if err := payments.Update(ctx, locked); err != nil {
			return application.NewInternalError(err)
		}

		completed = locked
		return nil
	})
	if err != nil {
		if chargeID != "" {
			s.logger.ErrorContext(ctx, "gateway charge succeeded but completion was not recorded",
				"payment_id", attempt.ID,
				"charge_id", chargeID,
				"error", err,
			)
		}
		return nil, s.fail(ctx, err, cmd)
	}

	paymentsCompletedCounter.Inc()
	s.logger.InfoContext(ctx, "vip payment completed and item promoted",
		"payment_id", completed.ID,
		"item_id", completed.ListingID,
		"charge_id", chargeID,
	)

	return completed, nil
}

func (s *CompletePaymentService) charge(ctx context.Context, attempt *domain.PaymentAttempt, token string) (string, error) {
	if token == "" {
		chargeFallbackCounter.Inc()
		s.logger.WarnContext(ctx, "no gateway token supplied, completing without a charge",
			"payment_id", attempt.ID,
			"item_id", attempt.ListingID,
		)
		return "", nil
	}

	resp, err := s.gateway.Charge(ctx, application.ChargeRequest{
		AmountMinor:    attempt.AmountCents,
		Currency:       attempt.Currency,
		MethodToken:    token,
		IdempotencyKey: IdempotencyKey(attempt.ID),
		Description:    fmt.Sprintf("VIP promotion for item %d", attempt.ListingID),
	})
	if err != nil {
		return "", err
	}
	return resp.ChargeID, nil
}

func checkCompletable(attempt *domain.PaymentAttempt) error {
	switch attempt.Status {
	case domain.StatusPending:
		return nil
	case domain.StatusCompleted:
		return application.NewPaymentCompletedError()
	case domain.StatusFailed:
		return application.NewPaymentFailedError()
	default:
		return application.NewInternalError(fmt.Errorf("unknown payment status %q", attempt.Status))
	}
}

func (s *CompletePaymentService) fail(ctx context.Context, err error, cmd CompletePaymentCommand) error {
	return logServiceError(ctx, s.logger, "complete payment rejected", err, "payment_id", cmd.PaymentID)
}
