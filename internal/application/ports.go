package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// GatewayClient is the port for the external card-payment gateway.
type GatewayClient interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
}

type ChargeRequest struct {
	AmountMinor    int64
	Currency       string
	MethodToken    string
	IdempotencyKey string
	Description    string
}

type ChargeResponse struct {
	ChargeID  string
	Status    string
	CreatedAt time.Time
}

// PaymentRepository is the port for payment attempt persistence. There are no deletes.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentAttempt) error
	FindByID(ctx context.Context, id int64) (*domain.PaymentAttempt, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.PaymentAttempt, error)
	FindPending(ctx context.Context, listingID int64) (*domain.PaymentAttempt, error)
	ExistsWithStatus(ctx context.Context, listingID int64, status domain.PaymentStatus) (bool, error)
	FindByOwnerEmail(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error)
	FindByListingID(ctx context.Context, listingID int64) ([]*domain.PaymentAttempt, error)
	Update(ctx context.Context, payment *domain.PaymentAttempt) error
}

// ListingRepository exposes the promotion flag of marketplace items.
type ListingRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Listing, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
}

// TransactionManager runs fn atomically against repositories bound to one transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, listings ListingRepository) error) error
}
