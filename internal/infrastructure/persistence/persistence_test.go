package persistence_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/infrastructure/persistence"
	"deal_radar/pkg/dbtest"
	"deal_radar/pkg/errcodes"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db := dbtest.Connect(t, "PG_TEST_DSN")

	require.NoError(t, dbtest.MigrateFromFile(db, "migrations/001_init.sql"))
	require.NoError(t, dbtest.Truncate(db, "monitors", "bids"))

	return db
}

func TestMonitorRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	repo := persistence.NewMonitorRepository(testDB(t))

	first := entity.Monitor{Query: "Nintendo Switch", ListingType: "garbage", ChannelID: 10, UserID: 1}
	rq.NoError(repo.Create(ctx, &first))
	rq.NotZero(first.ID)
	rq.False(first.CreatedAt.IsZero())
	rq.Equal(entity.ListingTypeAll, first.ListingType)

	second := entity.Monitor{Query: "gameboy", ListingType: entity.ListingTypeAuction, ChannelID: 20, UserID: 2}
	rq.NoError(repo.Create(ctx, &second))

	all, err := repo.List(ctx)
	rq.NoError(err)
	rq.Len(all, 2)
	rq.Equal("Nintendo Switch", all[0].Query)

	byChannel, err := repo.ListByChannel(ctx, 20)
	rq.NoError(err)
	rq.Len(byChannel, 1)
	rq.Equal(entity.ListingTypeAuction, byChannel[0].ListingType)

	err = repo.Delete(ctx, second.ID, 10)
	rq.True(domain.HasCode(err, errcodes.MonitorNotFound))

	rq.NoError(repo.Delete(ctx, second.ID, 20))

	n, err := repo.Count(ctx)
	rq.NoError(err)
	rq.Equal(1, n)
}

func TestBidRepositoryLifecycle(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	repo := persistence.NewBidRepository(testDB(t))

	bid := entity.BidRecord{
		ItemID: "v1|1|0",
		UserID: 7,
		MaxBid: decimal.NewFromInt(100),
		Status: entity.BidStatusActive,
	}
	created, err := repo.Create(ctx, &bid)
	rq.NoError(err)
	rq.True(created)

	dup := entity.BidRecord{ItemID: "v1|1|0", UserID: 7, Status: entity.BidStatusWatching}
	created, err = repo.Create(ctx, &dup)
	rq.NoError(err)
	rq.False(created)
	rq.Equal(bid.ID, dup.ID)

	rq.NoError(repo.UpdateObservedPrice(ctx, bid.ID, decimal.RequireFromString("150.00")))
	rq.NoError(repo.UpdateStatus(ctx, bid.ID, entity.BidStatusOutbid))

	raised, err := repo.RaiseMaxBid(ctx, bid.ID, 7, func(c decimal.Decimal) decimal.Decimal {
		return c.Add(decimal.NewFromInt(5))
	})
	rq.NoError(err)
	rq.Equal(entity.BidStatusActive, raised.Status)
	rq.True(raised.MaxBid.Equal(decimal.NewFromInt(105)))

	_, err = repo.RaiseMaxBid(ctx, bid.ID, 8, func(c decimal.Decimal) decimal.Decimal { return c })
	rq.True(domain.HasCode(err, errcodes.Forbidden))

	rq.NoError(repo.UpdateStatus(ctx, bid.ID, entity.BidStatusWon))

	// терминальный статус больше не меняется
	err = repo.UpdateStatus(ctx, bid.ID, entity.BidStatusLost)
	rq.True(domain.HasCode(err, errcodes.InvalidTransition))

	err = repo.UpdateObservedPrice(ctx, bid.ID, decimal.NewFromInt(1))
	rq.True(domain.HasCode(err, errcodes.BidNotFound))

	active, err := repo.ListActive(ctx)
	rq.NoError(err)
	rq.Empty(active)

	got, err := repo.GetByID(ctx, bid.ID)
	rq.NoError(err)
	rq.Equal(entity.BidStatusWon, got.Status)
	rq.True(got.CurrentBid.Equal(decimal.NewFromInt(150)))

	counts, err := repo.CountByStatus(ctx)
	rq.NoError(err)
	rq.Equal(1, counts[entity.BidStatusWon])

	_, err = repo.GetByID(ctx, 999999)
	rq.True(domain.HasCode(err, errcodes.BidNotFound))
}
