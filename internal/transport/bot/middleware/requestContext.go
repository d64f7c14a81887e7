package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// RequestContext кладёт в контекст апдейта id отправителя и логгер с ним.
func RequestContext() th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		userID := contextx.UserID(senderID(update))

		log := logger(ctx).With(
			logx.Stringer(logx.FieldUserID, userID),
			slog.Int("update-id", update.UpdateID),
		)

		c := contextx.WithUserID(ctx, userID)
		c = contextx.WithLogger(c, log)

		return ctx.WithContext(c).Next(update)
	}
}
