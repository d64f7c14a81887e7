package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"deal_radar/internal/domain/service/subscription"
	"deal_radar/internal/worker"
	"deal_radar/pkg/httpx/reply"
	"deal_radar/pkg/logx"
	"deal_radar/pkg/rest"
)

type monitoring interface {
	IsRunning() bool
	Status() []worker.LoopStatus
	RunNow(ctx context.Context, loop worker.Loop) error
}

type statsService interface {
	Stats(ctx context.Context) (subscription.Stats, error)
}

type seenCounter interface {
	Count(ctx context.Context) (int64, error)
}

type MonitoringServer struct {
	monitoring   monitoring
	statsService statsService
	seen         seenCounter
}

func NewMonitoringServer(monitoring monitoring, statsService statsService, seen seenCounter) MonitoringServer {
	return MonitoringServer{
		monitoring:   monitoring,
		statsService: statsService,
		seen:         seen,
	}
}

func (s MonitoringServer) getV1Status(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	stats, err := s.statsService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("statsService.Stats: %w", err)
	}

	seen, err := s.seen.Count(ctx)
	if err != nil {
		logger(ctx).Warn("failed to count seen items", logx.Error(err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStatus(s.monitoring.IsRunning(), s.monitoring.Status(), stats, seen))

	return nil
}

// postV1Cycle запускает цикл синхронно; занятый цикл: 409.
func (s MonitoringServer) postV1Cycle(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	loop, err := worker.ParseLoop(chi.URLParam(r, "loop"))
	if err != nil {
		return err
	}

	start := time.Now()

	if err := s.monitoring.RunNow(ctx, loop); err != nil {
		return fmt.Errorf("monitoring.RunNow: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.CycleResult{
		Loop:       string(loop),
		DurationMs: time.Since(start).Milliseconds(),
	})

	return nil
}
