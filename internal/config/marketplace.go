package config

import "time"

type Marketplace struct {
	BaseURL string `env:"MARKETPLACE_BASE_URL" envDefault:"https://api.ebay.com"`
	// Token: заранее выпущенный application token, OAuth-флоу не реализуем.
	Token      string        `env:"MARKETPLACE_TOKEN,required" json:"-"`
	MarketID   string        `env:"MARKETPLACE_ID" envDefault:"EBAY_US"`
	Timeout    time.Duration `env:"MARKETPLACE_TIMEOUT" envDefault:"15s"`
	RatePerSec float64       `env:"MARKETPLACE_RATE_PER_SEC" envDefault:"5"`
	// LogFieldMaxLen ограничивает размер дампа запросов/ответов в логах.
	LogFieldMaxLen int `env:"MARKETPLACE_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
