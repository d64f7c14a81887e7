package handler

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/internal/transport/bot/view"
	"deal_radar/internal/worker"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
)

const (
	memberStatusCreator       = "creator"
	memberStatusAdministrator = "administrator"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	stats, err := h.subs.Stats(ctx)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	seen, err := h.seen.Count(ctx)
	if err != nil {
		logger(ctx).Warn("failed to count seen items", logx.Error(err))
	}

	monitoringStatus := "⏸ локальный планировщик не запущен"
	if h.monitoring.IsRunning() {
		monitoringStatus = "🟢 работает"
	}

	var loops strings.Builder
	for _, l := range h.monitoring.Status() {
		last := "ещё не было"
		if !l.LastStarted.IsZero() {
			last = l.LastStarted.UTC().Format(time.DateTime) + " UTC"
		}

		suffix := ""
		switch {
		case l.InProgress:
			suffix = " ⏳"
		case l.LastError != "":
			suffix = " ⚠️ " + html.EscapeString(l.LastError)
		}

		fmt.Fprintf(&loops, view.LoopLineTemplate, l.Loop, l.Interval, last, suffix)
	}

	text := fmt.Sprintf(view.StatusTemplate,
		monitoringStatus,
		loops.String(),
		stats.Monitors,
		seen,
		formatBidCounts(stats.Bids),
	)

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

func (h *Handler) OnRun(ctx *th.Context, msg telego.Message) error {
	args := commandArgs(msg.Text)
	if len(args) != 1 {
		return h.sendHTML(ctx, msg.Chat.ID, view.RunUsage)
	}

	loop, err := worker.ParseLoop(args[0])
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.RunUsage)
	}

	start := time.Now()

	err = h.monitoring.RunNow(ctx, loop)
	switch {
	case domain.HasCode(err, errcodes.CycleInProgress):
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RunBusy, loop))
	case err != nil:
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RunError, loop, html.EscapeString(err.Error())))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RunDone, loop, time.Since(start).Round(time.Millisecond)))
}

func formatBidCounts(counts map[entity.BidStatus]int) string {
	statuses := []entity.BidStatus{
		entity.BidStatusWatching,
		entity.BidStatusActive,
		entity.BidStatusOutbid,
		entity.BidStatusWon,
		entity.BidStatusLost,
		entity.BidStatusCompleted,
	}

	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", s, n))
		}
	}

	if len(parts) == 0 {
		return "нет"
	}

	return strings.Join(parts, ", ")
}

func (h *Handler) OnMonitor(ctx *th.Context, msg telego.Message) error {
	listingType, query, ok := parseMonitorArgs(commandArgs(msg.Text))
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.MonitorUsage)
	}

	allowed, err := h.canManageChat(ctx, msg)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}
	if !allowed {
		return h.sendHTML(ctx, msg.Chat.ID, view.ChatAdminsOnly)
	}

	m, err := h.subs.AddMonitor(ctx, subscription.CreateMonitor{
		Query:       query,
		ListingType: listingType,
		ChannelID:   msg.Chat.ID,
		UserID:      senderID(msg),
	})
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	logger(ctx).Info("monitor created",
		slog.Int64(logx.FieldChannelID, m.ChannelID),
		slog.String(logx.FieldQuery, m.Query),
	)

	return h.sendHTML(ctx, msg.Chat.ID, monitorCreatedText(*m))
}

func monitorCreatedText(m entity.Monitor) string {
	return fmt.Sprintf(view.MonitorCreated, m.ID, html.EscapeString(m.Query), listingTypeLabel(m.ListingType))
}

func (h *Handler) OnMonitors(ctx *th.Context, msg telego.Message) error {
	monitors, err := h.subs.ListMonitors(ctx, msg.Chat.ID)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	if len(monitors) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.MonitorsEmpty)
	}

	var sb strings.Builder
	sb.WriteString(view.MonitorsHeader)
	for _, m := range monitors {
		fmt.Fprintf(&sb, view.MonitorLine, m.ID, html.EscapeString(m.Query), listingTypeLabel(m.ListingType))
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func (h *Handler) OnUnmonitor(ctx *th.Context, msg telego.Message) error {
	args := commandArgs(msg.Text)
	if len(args) != 1 {
		return h.sendHTML(ctx, msg.Chat.ID, view.UnmonitorUsage)
	}

	id, ok := parseID(args[0])
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.UnmonitorUsage)
	}

	allowed, err := h.canManageChat(ctx, msg)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}
	if !allowed {
		return h.sendHTML(ctx, msg.Chat.ID, view.ChatAdminsOnly)
	}

	if err := h.subs.RemoveMonitor(ctx, id, msg.Chat.ID); err != nil {
		if domain.HasCode(err, errcodes.MonitorNotFound) {
			return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.MonitorNotFound, id))
		}
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.MonitorRemoved, id))
}

func (h *Handler) OnWatch(ctx *th.Context, msg telego.Message) error {
	args := commandArgs(msg.Text)
	if len(args) != 1 {
		return h.sendHTML(ctx, msg.Chat.ID, view.WatchUsage)
	}

	bid, created, err := h.subs.Watch(ctx, senderID(msg), args[0])
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	if !created {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.WatchExists, html.EscapeString(bid.ItemID), bid.Status))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.WatchCreated, html.EscapeString(bid.ItemID)))
}

func (h *Handler) OnBid(ctx *th.Context, msg telego.Message) error {
	args := commandArgs(msg.Text)
	if len(args) != 2 {
		return h.sendHTML(ctx, msg.Chat.ID, view.BidUsage)
	}

	item, maxBid, ok := parseBidArgs(args)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.BidInvalidMax)
	}

	bid, created, err := h.subs.PlaceBid(ctx, senderID(msg), item, maxBid)
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	if !created {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.WatchExists, html.EscapeString(bid.ItemID), bid.Status))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.BidCreated, html.EscapeString(bid.ItemID), bid.MaxBid.StringFixed(2)))
}

func (h *Handler) OnMyBids(ctx *th.Context, msg telego.Message) error {
	bids, err := h.subs.UserBids(ctx, senderID(msg))
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	if len(bids) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.BidsEmpty)
	}

	var sb strings.Builder
	sb.WriteString(view.BidsHeader)
	for _, b := range bids {
		fmt.Fprintf(&sb, view.BidLine, b.ID, html.EscapeString(b.ItemID), b.Status,
			b.MaxBid.StringFixed(2), b.CurrentBid.StringFixed(2))
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

// canManageChat: в личке можно всё, в группе мониторами управляют только администраторы.
func (h *Handler) canManageChat(ctx *th.Context, msg telego.Message) (bool, error) {
	if msg.Chat.Type == telego.ChatTypePrivate {
		return true, nil
	}

	if msg.From == nil {
		return false, nil
	}

	member, err := ctx.Bot().GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: tu.ID(msg.Chat.ID),
		UserID: msg.From.ID,
	})
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}

	status := member.MemberStatus()
	return status == memberStatusCreator || status == memberStatusAdministrator, nil
}

// replyError показывает пользователю понятные ошибки валидации, остальное логирует.
func (h *Handler) replyError(ctx *th.Context, chatID int64, err error) error {
	if text, ok := userMessage(err); ok {
		return h.sendHTML(ctx, chatID, text)
	}

	logger(ctx).Error("bot command failed", slog.Int64(logx.FieldChannelID, chatID), logx.Error(err))

	return h.sendHTML(ctx, chatID, view.InternalFailure)
}

// userMessage возвращает текст для пользователя, если ошибка: его вина, а не сбой.
func userMessage(err error) (string, bool) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return "", false
	}

	switch appErr.Code {
	case errcodes.InvalidItemID:
		return view.InvalidItemID, true
	case errcodes.ValidationError, errcodes.InvalidListing, errcodes.InvalidMaxBid,
		errcodes.InvalidTransition, errcodes.Forbidden, errcodes.BidNotFound, errcodes.MonitorNotFound:
		return "❌ " + html.EscapeString(appErr.Message), true
	default:
		return "", false
	}
}

func senderID(msg telego.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, tu.Message(tu.ID(chatID), text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true}))
	return err
}
