package server

import (
	"time"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/internal/worker"
	"deal_radar/pkg/lox"
	"deal_radar/pkg/rest"
)

func newRESTMonitor(m entity.Monitor) rest.Monitor {
	return rest.Monitor{
		ID:          m.ID,
		Query:       m.Query,
		ListingType: string(m.ListingType),
		ChannelID:   m.ChannelID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

func newRESTMonitors(monitors []entity.Monitor) []rest.Monitor {
	return lox.Map(monitors, newRESTMonitor)
}

func newDomainCreateMonitor(req rest.CreateMonitorRequest) subscription.CreateMonitor {
	return subscription.CreateMonitor{
		Query:       req.Query,
		ListingType: req.ListingType,
		ChannelID:   req.ChannelID,
		UserID:      req.UserID,
	}
}

func newRESTBid(b entity.BidRecord) rest.Bid {
	return rest.Bid{
		ID:         b.ID,
		ItemID:     b.ItemID,
		UserID:     b.UserID,
		Title:      b.Title,
		MaxBid:     b.MaxBid.StringFixed(2),
		CurrentBid: b.CurrentBid.StringFixed(2),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func newRESTBids(bids []entity.BidRecord) []rest.Bid {
	return lox.Map(bids, newRESTBid)
}

func newDomainRaiseMode(mode string) subscription.RaiseMode {
	if mode == "percent" {
		return subscription.RaisePercent
	}
	return subscription.RaiseFixed
}

func newRESTLoopStatus(s worker.LoopStatus) rest.LoopStatus {
	return rest.LoopStatus{
		Loop:         string(s.Loop),
		Interval:     s.Interval.String(),
		InProgress:   s.InProgress,
		LastStarted:  optionalTime(s.LastStarted),
		LastFinished: optionalTime(s.LastFinished),
		LastError:    s.LastError,
	}
}

func newRESTStatus(running bool, loops []worker.LoopStatus, stats subscription.Stats, seen int64) rest.Status {
	bids := make(map[string]int, len(stats.Bids))
	for status, n := range stats.Bids {
		bids[string(status)] = n
	}

	return rest.Status{
		Running:   running,
		Loops:     lox.Map(loops, newRESTLoopStatus),
		Monitors:  stats.Monitors,
		SeenItems: seen,
		Bids:      bids,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
