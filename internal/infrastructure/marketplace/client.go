// Package marketplace: клиент eBay Browse и Marketplace Insights API.
package marketplace

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"deal_radar/internal/config"
	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/httpx"
	"deal_radar/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	searchPath = "/buy/browse/v1/item_summary/search"
	itemPath   = "/buy/browse/v1/item/"
	salesPath  = "/buy/marketplace_insights/v1_beta/item_sales/search"

	headerMarketplaceID = "X-EBAY-C-MARKETPLACE-ID"

	soldComparablesLimit = 50
	errorBodyLimit       = 4096
)

type Client struct {
	baseURL    string
	marketID   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient подменяет транспорт целиком (тесты, прокси).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithRateLimit(perSecond float64) Option {
	return func(cl *Client) {
		if perSecond > 0 {
			cl.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			cl.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

func New(cfg config.Marketplace, opts ...Option) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
		),
		staticToken{token: cfg.Token},
	)

	c := &Client{
		baseURL:  cfg.BaseURL,
		marketID: cfg.MarketID,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}

	WithRateLimit(cfg.RatePerSec)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchListings ищет активные лоты. filter: выражение Browse API, например buyingOptions:{AUCTION}.
func (c *Client) SearchListings(ctx context.Context, query string, limit int, filter string) ([]entity.Listing, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if filter != "" {
		params.Set("filter", filter)
	}

	var resp searchResponseDTO
	found, err := c.get(ctx, searchPath, params, &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	listings := make([]entity.Listing, 0, len(resp.ItemSummaries))
	for _, item := range resp.ItemSummaries {
		listings = append(listings, item.toDomain())
	}

	return listings, nil
}

// GetItemDetail возвращает nil, nil если лот больше не существует.
func (c *Client) GetItemDetail(ctx context.Context, itemID string) (*entity.Listing, error) {
	var resp itemDTO
	found, err := c.get(ctx, itemPath+url.PathEscape(itemID), nil, &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	listing := resp.toDomain()
	return &listing, nil
}

// GetSoldComparables возвращает недавние продажи по запросу.
func (c *Client) GetSoldComparables(ctx context.Context, query string) ([]entity.SoldItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(soldComparablesLimit))

	var resp salesResponseDTO
	found, err := c.get(ctx, salesPath, params, &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	sold := make([]entity.SoldItem, 0, len(resp.ItemSales))
	for _, sale := range resp.ItemSales {
		price := sale.LastSoldPrice.decimal()
		if price == nil {
			continue
		}
		sold = append(sold, entity.SoldItem{Price: *price, Currency: sale.LastSoldPrice.currency()})
	}

	return sold, nil
}

func (c *Client) NormalizeItemID(raw string) string {
	return NormalizeItemID(raw)
}

// get выполняет GET и декодирует ответ. 404: found=false без ошибки.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, domain.WrapError(err, errcodes.TransientFetchFailed, "rate limiter wait")
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.marketID != "" {
		req.Header.Set(headerMarketplaceID, c.marketID)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, domain.WrapError(err, errcodes.TransientFetchFailed, "marketplace request "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		var apiErr errorResponseDTO
		_ = json.Unmarshal(body, &apiErr)

		return false, domain.NewError(
			errcodes.TransientFetchFailed,
			fmt.Sprintf("marketplace %s: status %d (%s) after %s", path, resp.StatusCode, apiErr.message(), time.Since(start)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return false, domain.WrapError(err, errcodes.TransientFetchFailed, "decode marketplace response")
	}

	return true, nil
}
