package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/persistence/postgres/testhelpers"
)

type RepositoryTestSuite struct {
	suite.Suite
	testDB   *testhelpers.TestDatabase
	payments *postgres.PaymentRepository
	listings *postgres.ListingRepository
	tx       *postgres.TransactionCoordinator
	ctx      context.Context
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDatabase(s.T())
	s.payments = postgres.NewPaymentRepository(s.testDB.DB)
	s.listings = postgres.NewListingRepository(s.testDB.DB)
	s.tx = postgres.NewTransactionCoordinator(s.testDB.DB)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	s.testDB.Cleanup(s.T())
}

func (s *RepositoryTestSuite) SetupTest() {
	s.testDB.CleanTables(s.T())
}

func (s *RepositoryTestSuite) newPending(listingID int64, owner string) *domain.PaymentAttempt {
	card := domain.CardDetails{Number: "4242424242424242", Holder: "Ann Owner", Expiry: "12/30"}.Mask()
	p, err := domain.NewPaymentAttempt(listingID, owner, domain.MethodCard, card)
	s.Require().NoError(err)
	return p
}

func (s *RepositoryTestSuite) TestCreateAndFind() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)
	p := s.newPending(listingID, "a@x.com")

	s.Require().NoError(s.payments.Create(s.ctx, p))
	s.NotZero(p.ID)

	found, err := s.payments.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(listingID, found.ListingID)
	s.Equal("a@x.com", found.OwnerEmail)
	s.Equal(domain.StatusPending, found.Status)
	s.Equal(int64(200), found.AmountCents)
	s.Equal("EUR", found.Currency)
	s.Require().NotNil(found.Card)
	s.Equal("4242", found.Card.LastFour)
	s.Nil(found.CompletedAt)
}

func (s *RepositoryTestSuite) TestFindByID_NotFound() {
	_, err := s.payments.FindByID(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrPaymentNotFound)
}

func (s *RepositoryTestSuite) TestCreate_SecondPendingViolatesIndex() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)

	s.Require().NoError(s.payments.Create(s.ctx, s.newPending(listingID, "a@x.com")))

	err := s.payments.Create(s.ctx, s.newPending(listingID, "a@x.com"))
	s.ErrorIs(err, domain.ErrDuplicatePendingPayment)
}

func (s *RepositoryTestSuite) TestFindPendingAndExists() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)

	pending, err := s.payments.FindPending(s.ctx, listingID)
	s.Require().NoError(err)
	s.Nil(pending)

	p := s.newPending(listingID, "a@x.com")
	s.Require().NoError(s.payments.Create(s.ctx, p))

	pending, err = s.payments.FindPending(s.ctx, listingID)
	s.Require().NoError(err)
	s.Require().NotNil(pending)
	s.Equal(p.ID, pending.ID)

	exists, err := s.payments.ExistsWithStatus(s.ctx, listingID, domain.StatusCompleted)
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(p.Complete("ch_1", time.Now().UTC()))
	s.Require().NoError(s.payments.Update(s.ctx, p))

	exists, err = s.payments.ExistsWithStatus(s.ctx, listingID, domain.StatusCompleted)
	s.Require().NoError(err)
	s.True(exists)

	pending, err = s.payments.FindPending(s.ctx, listingID)
	s.Require().NoError(err)
	s.Nil(pending)

	// A completed attempt frees the partial index for a new one.
	s.NoError(s.payments.Create(s.ctx, s.newPending(listingID, "a@x.com")))
}

func (s *RepositoryTestSuite) TestFindByOwnerEmailAndListing() {
	first := s.testDB.SeedListing(s.T(), "a@x.com", false)
	second := s.testDB.SeedListing(s.T(), "a@x.com", false)
	other := s.testDB.SeedListing(s.T(), "b@x.com", false)

	older := s.newPending(first, "a@x.com")
	s.Require().NoError(s.payments.Create(s.ctx, older))
	newer := s.newPending(second, "a@x.com")
	s.Require().NoError(s.payments.Create(s.ctx, newer))
	s.Require().NoError(s.payments.Create(s.ctx, s.newPending(other, "b@x.com")))

	owned, err := s.payments.FindByOwnerEmail(s.ctx, "a@x.com", 10, 0)
	s.Require().NoError(err)
	s.Require().Len(owned, 2)
	s.Equal(newer.ID, owned[0].ID)

	paged, err := s.payments.FindByOwnerEmail(s.ctx, "a@x.com", 1, 1)
	s.Require().NoError(err)
	s.Require().Len(paged, 1)
	s.Equal(older.ID, paged[0].ID)

	byListing, err := s.payments.FindByListingID(s.ctx, other)
	s.Require().NoError(err)
	s.Len(byListing, 1)
}

func (s *RepositoryTestSuite) TestUpdate_NotFound() {
	err := s.payments.Update(s.ctx, &domain.PaymentAttempt{ID: 12345, Status: domain.StatusPending})
	s.ErrorIs(err, domain.ErrPaymentNotFound)
}

func (s *RepositoryTestSuite) TestListingRepository() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)

	listing, err := s.listings.FindByID(s.ctx, listingID)
	s.Require().NoError(err)
	s.False(listing.IsPromoted)
	s.Equal("a@x.com", listing.OwnerEmail)

	listing.Promote()
	s.Require().NoError(s.listings.Update(s.ctx, listing))

	reloaded, err := s.listings.FindByID(s.ctx, listingID)
	s.Require().NoError(err)
	s.True(reloaded.IsPromoted)

	_, err = s.listings.FindByID(s.ctx, 9999)
	s.ErrorIs(err, domain.ErrListingNotFound)
}

func (s *RepositoryTestSuite) TestWithTransaction_RollsBackBothWrites() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)
	p := s.newPending(listingID, "a@x.com")
	s.Require().NoError(s.payments.Create(s.ctx, p))

	boom := errors.New("boom")
	err := s.tx.WithTransaction(s.ctx, func(ctx context.Context, payments application.PaymentRepository, listings application.ListingRepository) error {
		listing, err := listings.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		listing.Promote()
		if err := listings.Update(ctx, listing); err != nil {
			return err
		}

		locked, err := payments.FindByIDForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := locked.Complete("ch_1", time.Now().UTC()); err != nil {
			return err
		}
		if err := payments.Update(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	listing, err := s.listings.FindByID(s.ctx, listingID)
	s.Require().NoError(err)
	s.False(listing.IsPromoted)

	reloaded, err := s.payments.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, reloaded.Status)
	s.Nil(reloaded.CompletedAt)
}

func (s *RepositoryTestSuite) TestConcurrentCreate_AtMostOnePending() {
	listingID := s.testDB.SeedListing(s.T(), "a@x.com", false)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.tx.WithTransaction(s.ctx, func(ctx context.Context, payments application.PaymentRepository, listings application.ListingRepository) error {
				if _, err := listings.FindByIDForUpdate(ctx, listingID); err != nil {
					return err
				}
				exists, err := payments.ExistsWithStatus(ctx, listingID, domain.StatusPending)
				if err != nil {
					return err
				}
				if exists {
					return domain.ErrDuplicatePendingPayment
				}
				return payments.Create(ctx, s.newPending(listingID, "a@x.com"))
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)

	all, err := s.payments.FindByListingID(s.ctx, listingID)
	s.Require().NoError(err)
	s.Len(all, 1)
}
