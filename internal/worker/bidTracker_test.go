package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/worker"
	"deal_radar/pkg/errcodes"
)

func bidRecord(id int64, itemID string, status entity.BidStatus, current, maxBid string) entity.BidRecord {
	return entity.BidRecord{
		ID:         id,
		ItemID:     itemID,
		UserID:     id * 10,
		Title:      "Record " + itemID,
		MaxBid:     decimal.RequireFromString(maxBid),
		CurrentBid: decimal.RequireFromString(current),
		Status:     status,
	}
}

func auctionItem(id, price string, end time.Time) *entity.Listing {
	item := &entity.Listing{
		ID:            id,
		Title:         "Item " + id,
		BuyingOptions: []string{entity.BuyingOptionAuction},
		EndTime:       end,
	}
	if price != "" {
		item.Price = money(price)
		item.Currency = "USD"
	}
	return item
}

func newTracker(market *fakeMarket, bids *fakeBids, dispatcher *fakeDispatcher) *worker.BidTracker {
	return worker.NewBidTracker(market, bids, dispatcher,
		worker.WithBidTrackerClock(func() time.Time { return testNow }),
	)
}

func TestBidTrackerSettlesEndedAuctions(t *testing.T) {
	rq := require.New(t)

	ended := testNow.Add(-time.Minute)

	testCases := []struct {
		name     string
		record   entity.BidRecord
		price    string
		statuses []entity.BidStatus
		message  string
	}{
		{
			name:     "Watch completes silently",
			record:   bidRecord(1, "v1|1|0", entity.BidStatusWatching, "0", "0"),
			price:    "55",
			statuses: []entity.BidStatus{entity.BidStatusCompleted},
		},
		{
			name:     "Final price under max wins",
			record:   bidRecord(2, "v1|2|0", entity.BidStatusActive, "70", "100"),
			price:    "80",
			statuses: []entity.BidStatus{entity.BidStatusWon},
			message:  "You Won!",
		},
		{
			name:     "Final price equal to max wins",
			record:   bidRecord(3, "v1|3|0", entity.BidStatusOutbid, "70", "100"),
			price:    "100",
			statuses: []entity.BidStatus{entity.BidStatusWon},
			message:  "Final Price: 100.00",
		},
		{
			name:     "Final price over max loses",
			record:   bidRecord(4, "v1|4|0", entity.BidStatusActive, "70", "100"),
			price:    "120",
			statuses: []entity.BidStatus{entity.BidStatusLost},
			message:  "Sold for: 120.00 (Your Max: 100.00)",
		},
		{
			name:   "Unresolvable final price leaves record untouched",
			record: bidRecord(5, "v1|5|0", entity.BidStatusActive, "70", "100"),
			price:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			market := newFakeMarket()
			market.details[tc.record.ItemID] = auctionItem(tc.record.ItemID, tc.price, ended)

			bids := newFakeBids(tc.record)
			dispatcher := newFakeDispatcher()

			rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

			rq.Equal(tc.statuses, bids.statuses[tc.record.ID])
			rq.Empty(bids.prices[tc.record.ID])

			if tc.message == "" {
				rq.Empty(dispatcher.toUser)
				return
			}

			rq.Len(dispatcher.toUser, 1)
			rq.Equal(tc.record.UserID, dispatcher.toUser[0].userID)
			rq.Contains(dispatcher.toUser[0].n.Text, tc.message)
		})
	}
}

func TestBidTrackerOutbid(t *testing.T) {
	rq := require.New(t)

	open := testNow.Add(time.Hour)

	t.Run("Price above max", func(*testing.T) {
		market := newFakeMarket()
		market.details["v1|1|0"] = auctionItem("v1|1|0", "150", open)

		bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusActive, "50", "100"))
		dispatcher := newFakeDispatcher()

		rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

		rq.Equal([]entity.BidStatus{entity.BidStatusOutbid}, bids.statuses[1])
		rq.Len(bids.prices[1], 1)
		rq.True(bids.prices[1][0].Equal(decimal.NewFromInt(150)))

		rq.Len(dispatcher.toUser, 1)
		n := dispatcher.toUser[0].n
		rq.Contains(n.Text, "OUTBID ALERT!")
		rq.Contains(n.Text, "Current: 150.00 (Max: 100.00)")
		rq.Equal([]entity.Button{
			{Label: "Increase +$5", Data: "bid_inc_5_1"},
			{Label: "Increase +10%", Data: "bid_inc_10p_1"},
		}, n.Buttons)
	})

	t.Run("Price rises but stays under max", func(*testing.T) {
		market := newFakeMarket()
		market.details["v1|1|0"] = auctionItem("v1|1|0", "90", open)

		bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusActive, "50", "100"))
		dispatcher := newFakeDispatcher()

		rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

		rq.Empty(bids.statuses[1])
		rq.Empty(dispatcher.toUser)
		rq.Len(bids.prices[1], 1)
		rq.True(bids.prices[1][0].Equal(decimal.NewFromInt(90)))
	})

	t.Run("Already outbid, price rises again", func(*testing.T) {
		market := newFakeMarket()
		market.details["v1|1|0"] = auctionItem("v1|1|0", "160", open)

		bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusOutbid, "150", "100"))
		dispatcher := newFakeDispatcher()

		rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

		rq.Empty(bids.statuses[1])
		rq.Len(dispatcher.toUser, 1)
		rq.Len(bids.prices[1], 1)
	})

	t.Run("Unchanged price", func(*testing.T) {
		market := newFakeMarket()
		market.details["v1|1|0"] = auctionItem("v1|1|0", "150", open)

		bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusOutbid, "150", "100"))
		dispatcher := newFakeDispatcher()

		rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

		rq.Empty(bids.statuses[1])
		rq.Empty(bids.prices[1])
		rq.Empty(dispatcher.toUser)
	})

	t.Run("Status write failure suppresses alert", func(*testing.T) {
		market := newFakeMarket()
		market.details["v1|1|0"] = auctionItem("v1|1|0", "150", open)

		bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusActive, "50", "100"))
		bids.statusErr = errBoom
		dispatcher := newFakeDispatcher()

		rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

		rq.Empty(dispatcher.toUser)
		rq.Empty(bids.prices[1])
	})
}

func TestBidTrackerWatchUpdate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	market := newFakeMarket()
	market.details["v1|1|0"] = auctionItem("v1|1|0", "20", testNow.Add(90*time.Minute))

	bids := newFakeBids(bidRecord(1, "v1|1|0", entity.BidStatusWatching, "0", "0"))
	dispatcher := newFakeDispatcher()
	tracker := newTracker(market, bids, dispatcher)

	rq.NoError(tracker.RunCycle(ctx))

	rq.Len(dispatcher.toUser, 1)
	rq.Contains(dispatcher.toUser[0].n.Text, "Watch Update:")
	rq.Contains(dispatcher.toUser[0].n.Text, "New Price: <b>$20.00</b>")
	rq.Contains(dispatcher.toUser[0].n.Text, "in 1h 30m")
	rq.Len(bids.prices[1], 1)
	rq.Empty(bids.statuses[1])

	// стор обновился: следующий цикл видит ту же цену и молчит
	bids.records[0].CurrentBid = decimal.NewFromInt(20)
	rq.NoError(tracker.RunCycle(ctx))
	rq.Len(dispatcher.toUser, 1)
	rq.Len(bids.prices[1], 1)
}

func TestBidTrackerFaultIsolation(t *testing.T) {
	rq := require.New(t)

	open := testNow.Add(time.Hour)

	market := newFakeMarket()
	market.detailErr["v1|1|0"] = errBoom
	market.details["v1|3|0"] = auctionItem("v1|3|0", "150", open)

	bids := newFakeBids(
		bidRecord(1, "v1|1|0", entity.BidStatusActive, "50", "100"),
		bidRecord(2, "v1|2|0", entity.BidStatusActive, "50", "100"),
		bidRecord(3, "v1|3|0", entity.BidStatusActive, "50", "100"),
	)
	dispatcher := newFakeDispatcher()
	dispatcher.userErr = errBoom

	rq.NoError(newTracker(market, bids, dispatcher).RunCycle(context.Background()))

	// запись 1: ошибка API, запись 2, лот не найден, запись 3 обработана несмотря на ошибку доставки
	rq.Empty(bids.statuses[1])
	rq.Empty(bids.statuses[2])
	rq.Equal([]entity.BidStatus{entity.BidStatusOutbid}, bids.statuses[3])
	rq.Len(dispatcher.toUser, 1)
	rq.Len(bids.prices[3], 1)
}

func TestBidTrackerListFailure(t *testing.T) {
	rq := require.New(t)

	bids := newFakeBids()
	bids.listErr = errBoom

	err := newTracker(newFakeMarket(), bids, newFakeDispatcher()).RunCycle(context.Background())
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.CycleFailed))
}
