package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App         App
	Postgres    Postgres
	Redis       Redis
	Bot         Bot
	Marketplace Marketplace
	Monitoring  Monitoring
	Asynq       Asynq
	HTTP        HTTP
}

type App struct {
	Name      string `env:"APP_NAME" envDefault:"deal-radar"`
	Version   string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type Bot struct {
	Token string `env:"BOT_TOKEN,required" json:"-"`
	// AdminID: кому доступны /status и ручной запуск циклов.
	AdminID int64 `env:"BOT_ADMIN_ID"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Marketplace.Token = correctNewlines(config.Marketplace.Token)

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
