package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

const paymentColumns = `
	id, item_id, owner_email, amount_cents, currency, status,
	payment_method, card_last_four, card_holder, card_expiry,
	gateway_charge_id, created_at, completed_at`

type PaymentRepository struct {
	q Executor
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

// Create inserts a new attempt and assigns its ID and creation time.
// A second PENDING attempt for the same item violates uq_vip_payments_pending_item
// and is reported as domain.ErrDuplicatePendingPayment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.PaymentAttempt) error {
	query := `
		INSERT INTO vip_payments (
			item_id, owner_email, amount_cents, currency, status,
			payment_method, card_last_four, card_holder, card_expiry,
			gateway_charge_id, created_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	p := toPaymentModel(payment)
	err := r.q.QueryRow(ctx, query,
		p.ItemID,
		p.OwnerEmail,
		p.AmountCents,
		p.Currency,
		p.Status,
		p.PaymentMethod,
		p.CardLastFour,
		p.CardHolder,
		p.CardExpiry,
		p.GatewayChargeID,
		p.CreatedAt,
		p.CompletedAt,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("create payment for item %d: %w", p.ItemID, domain.ErrDuplicatePendingPayment)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// FindByID retrieves a payment
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*domain.PaymentAttempt, error) {
	query := `SELECT` + paymentColumns + `
		FROM vip_payments WHERE id = $1
	`

	return scanPayment(r.q.QueryRow(ctx, query, id), id)
}

// FindByIDForUpdate retrieves a payment with a row-level lock. Only meaningful inside a transaction.
func (r *PaymentRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.PaymentAttempt, error) {
	query := `SELECT` + paymentColumns + `
		FROM vip_payments WHERE id = $1
		FOR UPDATE
	`

	return scanPayment(r.q.QueryRow(ctx, query, id), id)
}

// FindPending returns the open attempt for an item, or nil when there is none.
func (r *PaymentRepository) FindPending(ctx context.Context, listingID int64) (*domain.PaymentAttempt, error) {
	query := `SELECT` + paymentColumns + `
		FROM vip_payments
		WHERE item_id = $1 AND status = 'PENDING'
	`

	p, err := scanPayment(r.q.QueryRow(ctx, query, listingID), 0)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, nil
	}
	return p, err
}

func (r *PaymentRepository) ExistsWithStatus(ctx context.Context, listingID int64, status domain.PaymentStatus) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vip_payments WHERE item_id = $1 AND status = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, listingID, string(status)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check payment status for item %d: %w", listingID, err)
	}
	return exists, nil
}

// FindByOwnerEmail lists an owner's attempts, newest first.
func (r *PaymentRepository) FindByOwnerEmail(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error) {
	query := `SELECT` + paymentColumns + `
		FROM vip_payments WHERE owner_email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, ownerEmail, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query payments by owner_email: %w", err)
	}
	return collectPayments(rows)
}

// FindByListingID lists every attempt for an item, newest first.
func (r *PaymentRepository) FindByListingID(ctx context.Context, listingID int64) ([]*domain.PaymentAttempt, error) {
	query := `SELECT` + paymentColumns + `
		FROM vip_payments WHERE item_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("query payments by item_id: %w", err)
	}
	return collectPayments(rows)
}

// Update persists the mutable lifecycle fields. Identity, owner and amount never change.
func (r *PaymentRepository) Update(ctx context.Context, payment *domain.PaymentAttempt) error {
	query := `
		UPDATE vip_payments
		SET status = $1, gateway_charge_id = $2, completed_at = $3
		WHERE id = $4
	`

	p := toPaymentModel(payment)
	result, err := r.q.Exec(ctx, query,
		p.Status,
		p.GatewayChargeID,
		p.CompletedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewPaymentNotFoundError(p.ID)
	}

	return nil
}

func collectPayments(rows pgx.Rows) ([]*domain.PaymentAttempt, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.PaymentAttempt, error) {
		m, err := scanPaymentModel(row)
		return toDomainPayment(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return results, nil
}

// scanPayment converts a database row into a domain PaymentAttempt.
// Returns domain.ErrPaymentNotFound if the row doesn't exist.
func scanPayment(row pgx.Row, id int64) (*domain.PaymentAttempt, error) {
	m, err := scanPaymentModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return toDomainPayment(m), nil
}

func scanPaymentModel(row pgx.Row) (PaymentModel, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.ItemID, &m.OwnerEmail, &m.AmountCents, &m.Currency, &m.Status,
		&m.PaymentMethod, &m.CardLastFour, &m.CardHolder, &m.CardExpiry,
		&m.GatewayChargeID, &m.CreatedAt, &m.CompletedAt,
	)
	return m, err
}
