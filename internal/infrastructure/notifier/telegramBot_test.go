package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

type fakeSender struct {
	sent []*telego.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &telego.Message{}, nil
}

func TestTelegramBotSendToChannel(t *testing.T) {
	rq := require.New(t)

	sender := &fakeSender{}
	bot := newTelegramBot(sender)

	err := bot.SendToChannel(context.Background(), -100500, entity.Notification{
		Text:          "<b>Deal</b>",
		MentionUserID: 42,
		Buttons:       []entity.Button{{Label: "👀 Watch", Data: "watch_v1|1|0"}},
	})
	rq.NoError(err)
	rq.Len(sender.sent, 1)

	msg := sender.sent[0]
	rq.Equal(int64(-100500), msg.ChatID.ID)
	rq.Equal(telego.ModeHTML, msg.ParseMode)
	rq.Contains(msg.Text, `tg://user?id=42`)
	rq.Contains(msg.Text, "<b>Deal</b>")

	markup, ok := msg.ReplyMarkup.(*telego.InlineKeyboardMarkup)
	rq.True(ok)
	rq.Len(markup.InlineKeyboard, 1)
	rq.Equal("watch_v1|1|0", markup.InlineKeyboard[0][0].CallbackData)
}

func TestTelegramBotSendToUserFailure(t *testing.T) {
	rq := require.New(t)

	sender := &fakeSender{err: errors.New("Forbidden: bot was blocked by the user")}
	bot := newTelegramBot(sender)

	err := bot.SendToUser(context.Background(), 7, entity.Notification{Text: "hi", DisablePreview: true})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.DeliveryFailed))
	rq.ErrorContains(err, "blocked")

	rq.Len(sender.sent, 1)
	rq.Equal(int64(7), sender.sent[0].ChatID.ID)
	rq.NotNil(sender.sent[0].LinkPreviewOptions)
	rq.Nil(sender.sent[0].ReplyMarkup)
}
