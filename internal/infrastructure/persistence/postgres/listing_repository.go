package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

type ListingRepository struct {
	q Executor
}

func NewListingRepository(db *DB) *ListingRepository {
	return &ListingRepository{q: db.Pool}
}

func (r *ListingRepository) FindByID(ctx context.Context, id int64) (*domain.Listing, error) {
	query := `SELECT id, title, owner_email, is_vip FROM items WHERE id = $1`

	return scanListing(r.q.QueryRow(ctx, query, id), id)
}

// FindByIDForUpdate locks the item row. Holding this lock serializes every
// create and complete for the same item.
func (r *ListingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error) {
	query := `SELECT id, title, owner_email, is_vip FROM items WHERE id = $1 FOR UPDATE`

	return scanListing(r.q.QueryRow(ctx, query, id), id)
}

// Update writes the promotion flag only.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	result, err := r.q.Exec(ctx, `UPDATE items SET is_vip = $1 WHERE id = $2`, listing.IsPromoted, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.NewListingNotFoundError(listing.ID)
	}
	return nil
}

func scanListing(row pgx.Row, id int64) (*domain.Listing, error) {
	var m ListingModel
	if err := row.Scan(&m.ID, &m.Title, &m.OwnerEmail, &m.IsVIP); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewListingNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return toDomainListing(m), nil
}
