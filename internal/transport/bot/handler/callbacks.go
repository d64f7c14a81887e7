package handler

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/transport/bot/view"
	"deal_radar/pkg/logx"
)

// OnWatchCallback: кнопка "👀 Watch" под алертом.
func (h *Handler) OnWatchCallback(ctx *th.Context, query telego.CallbackQuery) error {
	itemID := strings.TrimPrefix(query.Data, entity.CallbackWatch)

	bid, created, err := h.subs.Watch(ctx, query.From.ID, itemID)
	if err != nil {
		return h.answerFailure(ctx, query, err)
	}

	text := "👀 Слежу за лотом, обновления придут в личку"
	if !created {
		text = fmt.Sprintf("Уже отслеживается (%s)", bid.Status)
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(text))
}

// OnRaiseCallback: кнопки "Increase +$5" и "Increase +10%" под алертом о перебитой ставке.
func (h *Handler) OnRaiseCallback(ctx *th.Context, query telego.CallbackQuery) error {
	bidID, mode, ok := parseRaiseCallback(query.Data)
	if !ok {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(""))
	}

	bid, err := h.subs.RaiseMaxBid(ctx, bidID, query.From.ID, mode)
	if err != nil {
		return h.answerFailure(ctx, query, err)
	}

	logger(ctx).Info("max bid raised",
		slog.Int64(logx.FieldBidID, bid.ID),
		slog.String(logx.FieldPrice, bid.MaxBid.String()),
	)

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
		WithText(fmt.Sprintf("Максимум поднят до $%s", bid.MaxBid.StringFixed(2))))
}

func (h *Handler) answerFailure(ctx *th.Context, query telego.CallbackQuery, err error) error {
	text, ok := userMessage(err)
	if !ok {
		logger(ctx).Error("callback failed", slog.String("data", query.Data), logx.Error(err))
		text = view.CallbackFailed
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).WithText(html.UnescapeString(text)).WithShowAlert())
}
