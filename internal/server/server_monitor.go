package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/pkg/httpx/reply"
	"deal_radar/pkg/httpx/req"
	"deal_radar/pkg/rest"
)

type monitorService interface {
	AddMonitor(ctx context.Context, req subscription.CreateMonitor) (*entity.Monitor, error)
	ListMonitors(ctx context.Context, channelID int64) ([]entity.Monitor, error)
	AllMonitors(ctx context.Context) ([]entity.Monitor, error)
	RemoveMonitor(ctx context.Context, id, channelID int64) error
}

type MonitorServer struct {
	monitorService monitorService
}

func NewMonitorServer(monitorService monitorService) MonitorServer {
	return MonitorServer{
		monitorService: monitorService,
	}
}

// getV1Monitors без channel_id отдаёт все мониторы.
func (s MonitorServer) getV1Monitors(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var (
		monitors []entity.Monitor
		err      error
	)

	if raw := r.URL.Query().Get("channel_id"); raw != "" {
		channelID, err := parseInt64("channel_id", raw)
		if err != nil {
			return err
		}

		monitors, err = s.monitorService.ListMonitors(ctx, channelID)
		if err != nil {
			return fmt.Errorf("monitorService.ListMonitors: %w", err)
		}
	} else {
		monitors, err = s.monitorService.AllMonitors(ctx)
		if err != nil {
			return fmt.Errorf("monitorService.AllMonitors: %w", err)
		}
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTMonitors(monitors))

	return nil
}

func (s MonitorServer) postV1Monitor(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateMonitorRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	monitor, err := s.monitorService.AddMonitor(ctx, newDomainCreateMonitor(request))
	if err != nil {
		return fmt.Errorf("monitorService.AddMonitor: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTMonitor(*monitor))

	return nil
}

func (s MonitorServer) deleteV1Monitor(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseInt64("id", chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	channelID, err := parseInt64("channel_id", r.URL.Query().Get("channel_id"))
	if err != nil {
		return err
	}

	if err := s.monitorService.RemoveMonitor(ctx, id, channelID); err != nil {
		return fmt.Errorf("monitorService.RemoveMonitor: %w", err)
	}

	reply.OK(w)

	return nil
}
