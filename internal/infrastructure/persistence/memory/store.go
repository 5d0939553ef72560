// Package memory is a process-local implementation of the payment and listing
// stores. Transactions run against a cloned snapshot that replaces the live
// state on commit, so a failed transaction leaves nothing behind.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

type state struct {
	payments map[int64]*domain.PaymentAttempt
	listings map[int64]*domain.Listing
	nextID   int64
}

func (s *state) clone() *state {
	c := &state{
		payments: make(map[int64]*domain.PaymentAttempt, len(s.payments)),
		listings: make(map[int64]*domain.Listing, len(s.listings)),
		nextID:   s.nextID,
	}
	for id, p := range s.payments {
		c.payments[id] = clonePayment(p)
	}
	for id, l := range s.listings {
		copied := *l
		c.listings[id] = &copied
	}
	return c
}

// Store owns all state. Writers, transactional or not, are serialized by txMu;
// readers only take mu.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

func NewStore() *Store {
	return &Store{
		st: &state{
			payments: make(map[int64]*domain.PaymentAttempt),
			listings: make(map[int64]*domain.Listing),
		},
	}
}

// SeedListing stores a listing as the catalogue would have created it.
func (s *Store) SeedListing(listing domain.Listing) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.listings[listing.ID] = &listing
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (s *Store) Listings() *ListingRepository {
	return &ListingRepository{store: s}
}

// WithTransaction runs fn on a private snapshot and publishes it only if fn succeeds.
func (s *Store) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, payments application.PaymentRepository, listings application.ListingRepository) error,
) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &PaymentRepository{store: s, tx: snapshot}, &ListingRepository{store: s, tx: snapshot}); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) read(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func clonePayment(p *domain.PaymentAttempt) *domain.PaymentAttempt {
	c := *p
	if p.Card != nil {
		card := *p.Card
		c.Card = &card
	}
	if p.GatewayChargeID != nil {
		id := *p.GatewayChargeID
		c.GatewayChargeID = &id
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
