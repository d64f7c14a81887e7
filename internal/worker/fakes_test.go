package worker_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

var errBoom = errors.New("boom")

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type fakeMarket struct {
	mu sync.Mutex

	search      map[string][]entity.Listing
	searchErr   map[string]error
	sold        map[string][]entity.SoldItem
	soldErr     error
	details     map[string]*entity.Listing
	detailErr   map[string]error
	searchCalls []string
	soldCalls   []string
	filters     []string
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		search:    map[string][]entity.Listing{},
		searchErr: map[string]error{},
		sold:      map[string][]entity.SoldItem{},
		details:   map[string]*entity.Listing{},
		detailErr: map[string]error{},
	}
}

func (f *fakeMarket) SearchListings(_ context.Context, query string, _ int, filter string) ([]entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchCalls = append(f.searchCalls, query)
	f.filters = append(f.filters, filter)

	if err := f.searchErr[query]; err != nil {
		return nil, err
	}
	return f.search[query], nil
}

func (f *fakeMarket) GetItemDetail(_ context.Context, itemID string) (*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.detailErr[itemID]; err != nil {
		return nil, err
	}
	return f.details[itemID], nil
}

func (f *fakeMarket) GetSoldComparables(_ context.Context, query string) ([]entity.SoldItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.soldCalls = append(f.soldCalls, query)

	if f.soldErr != nil {
		return nil, f.soldErr
	}
	return f.sold[query], nil
}

func (f *fakeMarket) NormalizeItemID(raw string) string {
	return raw
}

type fakeMonitors struct {
	monitors []entity.Monitor
	err      error
}

func (f *fakeMonitors) List(context.Context) ([]entity.Monitor, error) {
	return f.monitors, f.err
}

type fakeSeen struct {
	mu      sync.Mutex
	seen    map[string]bool
	lookErr map[string]error
	markErr error
	marked  []string
	events  *[]string
}

func newFakeSeen() *fakeSeen {
	return &fakeSeen{seen: map[string]bool{}, lookErr: map[string]error{}}
}

func (f *fakeSeen) IsSeen(_ context.Context, itemID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lookErr[itemID]; err != nil {
		return false, err
	}
	return f.seen[itemID], nil
}

func (f *fakeSeen) MarkSeen(_ context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.marked = append(f.marked, itemID)
	if f.events != nil {
		*f.events = append(*f.events, "mark")
	}
	if f.markErr != nil {
		return f.markErr
	}
	f.seen[itemID] = true
	return nil
}

type sentMessage struct {
	channelID int64
	userID    int64
	n         entity.Notification
}

type fakeDispatcher struct {
	mu         sync.Mutex
	toChannel  []sentMessage
	toUser     []sentMessage
	channelErr map[int64]error
	userErr    error
	// events: общий журнал порядка вызовов (send/mark)
	events *[]string
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{channelErr: map[int64]error{}}
}

func (f *fakeDispatcher) SendToChannel(_ context.Context, channelID int64, n entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.toChannel = append(f.toChannel, sentMessage{channelID: channelID, n: n})
	if f.events != nil {
		*f.events = append(*f.events, "send")
	}
	return f.channelErr[channelID]
}

func (f *fakeDispatcher) SendToUser(_ context.Context, userID int64, n entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.toUser = append(f.toUser, sentMessage{userID: userID, n: n})
	return f.userErr
}

type fakeBids struct {
	mu        sync.Mutex
	records   []entity.BidRecord
	listErr   error
	statusErr error
	statuses  map[int64][]entity.BidStatus
	prices    map[int64][]decimal.Decimal
}

func newFakeBids(records ...entity.BidRecord) *fakeBids {
	return &fakeBids{
		records:  records,
		statuses: map[int64][]entity.BidStatus{},
		prices:   map[int64][]decimal.Decimal{},
	}
}

func (f *fakeBids) ListActive(context.Context) ([]entity.BidRecord, error) {
	return f.records, f.listErr
}

func (f *fakeBids) UpdateStatus(_ context.Context, id int64, status entity.BidStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses[id] = append(f.statuses[id], status)
	return nil
}

func (f *fakeBids) UpdateObservedPrice(_ context.Context, id int64, price decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prices[id] = append(f.prices[id], price)
	return nil
}
