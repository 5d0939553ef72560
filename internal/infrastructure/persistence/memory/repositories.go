package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// PaymentRepository reads and writes either the live state or, inside
// WithTransaction, the transaction's snapshot.
type PaymentRepository struct {
	store *Store
	tx    *state
}

func (r *PaymentRepository) Create(_ context.Context, payment *domain.PaymentAttempt) error {
	return r.store.write(r.tx, func(st *state) error {
		if payment.Status == domain.StatusPending {
			for _, existing := range st.payments {
				if existing.ListingID == payment.ListingID && existing.Status == domain.StatusPending {
					return fmt.Errorf("create payment for item %d: %w", payment.ListingID, domain.ErrDuplicatePendingPayment)
				}
			}
		}

		st.nextID++
		payment.ID = st.nextID
		if payment.CreatedAt.IsZero() {
			payment.CreatedAt = time.Now().UTC()
		}
		st.payments[payment.ID] = clonePayment(payment)
		return nil
	})
}

func (r *PaymentRepository) FindByID(_ context.Context, id int64) (*domain.PaymentAttempt, error) {
	var found *domain.PaymentAttempt
	err := r.store.read(r.tx, func(st *state) error {
		p, ok := st.payments[id]
		if !ok {
			return domain.NewPaymentNotFoundError(id)
		}
		found = clonePayment(p)
		return nil
	})
	return found, err
}

// FindByIDForUpdate is FindByID: a transaction already holds the store exclusively.
func (r *PaymentRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.PaymentAttempt, error) {
	return r.FindByID(ctx, id)
}

func (r *PaymentRepository) FindPending(_ context.Context, listingID int64) (*domain.PaymentAttempt, error) {
	var found *domain.PaymentAttempt
	err := r.store.read(r.tx, func(st *state) error {
		for _, p := range st.payments {
			if p.ListingID == listingID && p.Status == domain.StatusPending {
				found = clonePayment(p)
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *PaymentRepository) ExistsWithStatus(_ context.Context, listingID int64, status domain.PaymentStatus) (bool, error) {
	var exists bool
	err := r.store.read(r.tx, func(st *state) error {
		for _, p := range st.payments {
			if p.ListingID == listingID && p.Status == status {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *PaymentRepository) FindByOwnerEmail(_ context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error) {
	matches := r.filter(func(p *domain.PaymentAttempt) bool { return p.OwnerEmail == ownerEmail })

	if offset >= len(matches) {
		return []*domain.PaymentAttempt{}, nil
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *PaymentRepository) FindByListingID(_ context.Context, listingID int64) ([]*domain.PaymentAttempt, error) {
	return r.filter(func(p *domain.PaymentAttempt) bool { return p.ListingID == listingID }), nil
}

func (r *PaymentRepository) Update(_ context.Context, payment *domain.PaymentAttempt) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.payments[payment.ID]
		if !ok {
			return domain.NewPaymentNotFoundError(payment.ID)
		}
		updated := clonePayment(existing)
		updated.Status = payment.Status
		updated.CompletedAt = payment.CompletedAt
		updated.GatewayChargeID = payment.GatewayChargeID
		st.payments[payment.ID] = clonePayment(updated)
		return nil
	})
}

// filter returns matching attempts newest first.
func (r *PaymentRepository) filter(match func(p *domain.PaymentAttempt) bool) []*domain.PaymentAttempt {
	var out []*domain.PaymentAttempt
	_ = r.store.read(r.tx, func(st *state) error {
		for _, p := range st.payments {
			if match(p) {
				out = append(out, clonePayment(p))
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if out == nil {
		out = []*domain.PaymentAttempt{}
	}
	return out
}

type ListingRepository struct {
	store *Store
	tx    *state
}

func (r *ListingRepository) FindByID(_ context.Context, id int64) (*domain.Listing, error) {
	var found *domain.Listing
	err := r.store.read(r.tx, func(st *state) error {
		l, ok := st.listings[id]
		if !ok {
			return domain.NewListingNotFoundError(id)
		}
		copied := *l
		found = &copied
		return nil
	})
	return found, err
}

func (r *ListingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Listing, error) {
	return r.FindByID(ctx, id)
}

// Update writes the promotion flag only.
func (r *ListingRepository) Update(_ context.Context, listing *domain.Listing) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.listings[listing.ID]
		if !ok {
			return domain.NewListingNotFoundError(listing.ID)
		}
		updated := *existing
		updated.IsPromoted = listing.IsPromoted
		st.listings[listing.ID] = &updated
		return nil
	})
}
