package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/pkg/httpx/reply"
	"deal_radar/pkg/httpx/req"
	"deal_radar/pkg/rest"
)

type bidService interface {
	Watch(ctx context.Context, userID int64, rawItemID string) (*entity.BidRecord, bool, error)
	PlaceBid(ctx context.Context, userID int64, rawItemID string, maxBid decimal.Decimal) (*entity.BidRecord, bool, error)
	RaiseMaxBid(ctx context.Context, bidID, userID int64, mode subscription.RaiseMode) (*entity.BidRecord, error)
	UserBids(ctx context.Context, userID int64) ([]entity.BidRecord, error)
}

type BidServer struct {
	bidService bidService
}

func NewBidServer(bidService bidService) BidServer {
	return BidServer{
		bidService: bidService,
	}
}

// postV1Bid без max_bid создаёт наблюдение, с ним: отслеживаемую ставку.
func (s BidServer) postV1Bid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateBidRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	var (
		bid     *entity.BidRecord
		created bool
		err     error
	)

	if request.MaxBid == nil {
		bid, created, err = s.bidService.Watch(ctx, request.UserID, request.ItemID)
		if err != nil {
			return fmt.Errorf("bidService.Watch: %w", err)
		}
	} else {
		// numeric уже проверен валидатором
		maxBid := decimal.RequireFromString(*request.MaxBid)

		bid, created, err = s.bidService.PlaceBid(ctx, request.UserID, request.ItemID, maxBid)
		if err != nil {
			return fmt.Errorf("bidService.PlaceBid: %w", err)
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	reply.JSON(ctx, w, status, rest.CreateBidResponse{
		Bid:     newRESTBid(*bid),
		Created: created,
	})

	return nil
}

func (s BidServer) postV1BidRaise(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInt64("id", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	var request rest.RaiseBidRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	bid, err := s.bidService.RaiseMaxBid(ctx, id, request.UserID, newDomainRaiseMode(request.Mode))
	if err != nil {
		return fmt.Errorf("bidService.RaiseMaxBid: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBid(*bid))

	return nil
}

func (s BidServer) getV1UserBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := parseInt64("userID", chi.URLParam(r, "userID"))
	if err != nil {
		return err
	}

	bids, err := s.bidService.UserBids(ctx, userID)
	if err != nil {
		return fmt.Errorf("bidService.UserBids: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBids(bids))

	return nil
}
