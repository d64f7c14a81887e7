package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	bh.Use(middleware.RequestContext())

	// Управление мониторингом только для администратора бота
	adminGroup := bh.Group(th.Or(th.CommandEqual("status"), th.CommandEqual("run")))
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnRun, th.CommandEqual("run"))

	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnStart, th.CommandEqual("help"))
	bh.HandleMessage(h.OnMonitor, th.CommandEqual("monitor"))
	bh.HandleMessage(h.OnMonitors, th.CommandEqual("monitors"))
	bh.HandleMessage(h.OnUnmonitor, th.CommandEqual("unmonitor"))
	bh.HandleMessage(h.OnWatch, th.CommandEqual("watch"))
	bh.HandleMessage(h.OnBid, th.CommandEqual("bid"))
	bh.HandleMessage(h.OnMyBids, th.CommandEqual("mybids"))

	bh.HandleCallbackQuery(h.OnWatchCallback, th.CallbackDataPrefix(entity.CallbackWatch))
	bh.HandleCallbackQuery(h.OnRaiseCallback, th.Or(
		th.CallbackDataPrefix(entity.CallbackRaiseFixed),
		th.CallbackDataPrefix(entity.CallbackRaisePercent),
	))
}
