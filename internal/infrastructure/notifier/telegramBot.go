package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot доставляет уведомления в каналы (чаты мониторов) и в личку пользователям.
type TelegramBot struct {
	bot messageSender
}

func NewTelegramBot(bot *telego.Bot) *TelegramBot {
	return &TelegramBot{bot: bot}
}

func newTelegramBot(sender messageSender) *TelegramBot {
	return &TelegramBot{bot: sender}
}

// SendToChannel отправляет уведомление в чат монитора, упоминая подписчика.
func (b *TelegramBot) SendToChannel(ctx context.Context, channelID int64, n entity.Notification) error {
	text := n.Text
	if n.MentionUserID != 0 {
		text = mention(n.MentionUserID) + "\n" + text
	}

	if err := b.send(ctx, channelID, text, n); err != nil {
		return domain.WrapError(err, errcodes.DeliveryFailed, fmt.Sprintf("send to channel %d", channelID))
	}

	return nil
}

// SendToUser отправляет уведомление в личные сообщения. В Telegram chat id лички равен user id.
func (b *TelegramBot) SendToUser(ctx context.Context, userID int64, n entity.Notification) error {
	if err := b.send(ctx, userID, n.Text, n); err != nil {
		return domain.WrapError(err, errcodes.DeliveryFailed, fmt.Sprintf("send to user %d", userID))
	}

	return nil
}

func (b *TelegramBot) send(ctx context.Context, chatID int64, text string, n entity.Notification) error {
	msg := tu.Message(
		tu.ID(chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if len(n.Buttons) > 0 {
		buttons := make([]telego.InlineKeyboardButton, 0, len(n.Buttons))
		for _, btn := range n.Buttons {
			buttons = append(buttons, tu.InlineKeyboardButton(btn.Label).WithCallbackData(btn.Data))
		}
		msg = msg.WithReplyMarkup(tu.InlineKeyboard(tu.InlineKeyboardRow(buttons...)))
	}

	if n.DisablePreview {
		msg.LinkPreviewOptions = &telego.LinkPreviewOptions{IsDisabled: true}
	}

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func mention(userID int64) string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">🔔</a>`, userID)
}
