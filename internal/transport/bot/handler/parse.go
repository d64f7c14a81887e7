package handler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
)

// commandArgs возвращает слова сообщения после команды.
func commandArgs(text string) []string {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}

// parseMonitorArgs разбирает "[all|auction|bin] запрос". Первое слово считается типом, только если за ним есть запрос.
func parseMonitorArgs(args []string) (listingType, query string, ok bool) {
	if len(args) == 0 {
		return "", "", false
	}

	if len(args) > 1 {
		if _, isType := entity.ParseListingType(args[0]); isType {
			return args[0], strings.Join(args[1:], " "), true
		}
	}

	return string(entity.ListingTypeAll), strings.Join(args, " "), true
}

var (
	thousandsAmount = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`) //nolint:gochecknoglobals
	commaDecimal    = regexp.MustCompile(`^\d+,\d{1,2}$`)              //nolint:gochecknoglobals
)

// parseBidArgs разбирает "<лот> <максимум>", максимум допускает $ и запятую.
func parseBidArgs(args []string) (item string, maxBid decimal.Decimal, ok bool) {
	if len(args) != 2 {
		return "", decimal.Zero, false
	}

	maxBid, ok = parseAmount(args[1])
	if !ok {
		return args[0], decimal.Zero, false
	}

	return args[0], maxBid, true
}

// parseAmount: запятая либо разделяет тысячи (1,000 и 1,000.50), либо единственная
// и за ней 1-2 цифры (12,5). Остальные варианты с запятой отклоняются.
func parseAmount(arg string) (decimal.Decimal, bool) {
	raw := strings.TrimPrefix(arg, "$")

	switch {
	case thousandsAmount.MatchString(raw):
		raw = strings.ReplaceAll(raw, ",", "")
	case commaDecimal.MatchString(raw):
		raw = strings.Replace(raw, ",", ".", 1)
	case strings.Contains(raw, ","):
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}

func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseRaiseCallback разбирает bid_inc_5_<id> и bid_inc_10p_<id>.
func parseRaiseCallback(data string) (bidID int64, mode subscription.RaiseMode, ok bool) {
	switch {
	case strings.HasPrefix(data, entity.CallbackRaisePercent):
		bidID, ok = parseID(strings.TrimPrefix(data, entity.CallbackRaisePercent))
		return bidID, subscription.RaisePercent, ok
	case strings.HasPrefix(data, entity.CallbackRaiseFixed):
		bidID, ok = parseID(strings.TrimPrefix(data, entity.CallbackRaiseFixed))
		return bidID, subscription.RaiseFixed, ok
	default:
		return 0, 0, false
	}
}

func listingTypeLabel(t entity.ListingType) string {
	switch t {
	case entity.ListingTypeAuction:
		return "аукционы"
	case entity.ListingTypeBuyItNow:
		return "купить сейчас"
	default:
		return "все лоты"
	}
}
