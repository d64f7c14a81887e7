package worker

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

const (
	watchButtonLabel        = "👀 Watch"
	raiseFixedButtonLabel   = "Increase +$5"
	raisePercentButtonLabel = "Increase +10%"
)

// renderDealAlert собирает одно сообщение на лот; оно же уходит всем мониторам группы.
func renderDealAlert(deal entity.Deal, now time.Time) entity.Notification {
	l := deal.Listing

	var b strings.Builder

	// невидимая ссылка на картинку, чтобы Telegram показал превью
	if l.ThumbnailURL != "" {
		fmt.Fprintf(&b, "<a href=\"%s\">&#8203;</a>", html.EscapeString(l.ThumbnailURL))
	}

	kind := "🚨 Deal"
	if l.IsAuction() {
		kind = "🔨 Auction"
	}

	if l.URL != "" {
		fmt.Fprintf(&b, "<b>%s:</b> <a href=\"%s\">%s</a>\n", kind, html.EscapeString(l.URL), html.EscapeString(l.Title))
	} else {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", kind, html.EscapeString(l.Title))
	}

	fmt.Fprintf(&b, "<b>Current Price:</b> %s\n", html.EscapeString(deal.Display))
	fmt.Fprintf(&b, "<b>Fair Price:</b> $%s\n", deal.FairPrice.StringFixed(2))

	if l.IsAuction() {
		fmt.Fprintf(&b, "<b>Bids:</b> %d | <b>Ends:</b> %s\n", l.BidCount, formatEnds(l.EndTime, now))
	}

	fmt.Fprintf(&b, "<b>eBay Item ID:</b> <code>%s</code>\n", html.EscapeString(l.LegacyID()))

	e := deal.Evaluation
	fmt.Fprintf(&b, "<b>Deal Meter:</b> %s %d%% %s", e.Emoji, e.Score, e.Label)

	return entity.Notification{
		Text:           b.String(),
		Buttons:        []entity.Button{{Label: watchButtonLabel, Data: entity.CallbackWatch + l.ID}},
		DisablePreview: l.ThumbnailURL == "",
	}
}

func renderWon(title string, price decimal.Decimal) entity.Notification {
	return entity.Notification{
		Text: fmt.Sprintf("🎉 <b>You Won!</b> Item: %s\nFinal Price: %s",
			html.EscapeString(title), price.StringFixed(2)),
		DisablePreview: true,
	}
}

func renderLost(title string, price, maxBid decimal.Decimal) entity.Notification {
	return entity.Notification{
		Text: fmt.Sprintf("😢 <b>Lost.</b> Item: %s\nSold for: %s (Your Max: %s)",
			html.EscapeString(title), price.StringFixed(2), maxBid.StringFixed(2)),
		DisablePreview: true,
	}
}

func renderWatchUpdate(title string, price decimal.Decimal, end, now time.Time) entity.Notification {
	return entity.Notification{
		Text: fmt.Sprintf("👀 <b>Watch Update:</b> %s\nNew Price: <b>$%s</b>\nEnds: %s",
			html.EscapeString(title), price.StringFixed(2), formatEnds(end, now)),
		DisablePreview: true,
	}
}

func renderOutbid(bid entity.BidRecord, title string, price decimal.Decimal) entity.Notification {
	id := fmt.Sprint(bid.ID)

	return entity.Notification{
		Text: fmt.Sprintf("⚠️ <b>OUTBID ALERT!</b>\nItem: %s\nCurrent: %s (Max: %s)",
			html.EscapeString(title), price.StringFixed(2), bid.MaxBid.StringFixed(2)),
		Buttons: []entity.Button{
			{Label: raiseFixedButtonLabel, Data: entity.CallbackRaiseFixed + id},
			{Label: raisePercentButtonLabel, Data: entity.CallbackRaisePercent + id},
		},
		DisablePreview: true,
	}
}

// formatEnds: абсолютное время в UTC и остаток до конца.
func formatEnds(end, now time.Time) string {
	if end.IsZero() {
		return "N/A"
	}

	abs := end.UTC().Format("02 Jan 15:04 UTC")

	left := end.Sub(now)
	if left <= 0 {
		return abs + " (ended)"
	}

	return fmt.Sprintf("%s (in %s)", abs, formatLeft(left))
}

func formatLeft(d time.Duration) string {
	d = d.Round(time.Minute)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return "under 1m"
	}
}

func listingTitle(item *entity.Listing, bid entity.BidRecord) string {
	if item != nil && item.Title != "" {
		return item.Title
	}
	if bid.Title != "" {
		return bid.Title
	}
	return bid.ItemID
}
