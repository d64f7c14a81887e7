package entity

// Notification: готовое к отправке сообщение, формат HTML.
type Notification struct {
	Text string
	// MentionUserID: кого упомянуть при отправке в канал (0, никого).
	MentionUserID int64
	Buttons       []Button
	// DisablePreview отключает превью ссылки в тексте.
	DisablePreview bool
}

type Button struct {
	Label string
	Data  string
}

// Префиксы callback data инлайн-кнопок.
const (
	CallbackWatch        = "watch_"
	CallbackRaiseFixed   = "bid_inc_5_"
	CallbackRaisePercent = "bid_inc_10p_"
)
