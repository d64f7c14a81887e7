package config

import "time"

const (
	SchedulerModeLocal = "local"
	SchedulerModeAsynq = "asynq"
)

type Monitoring struct {
	SchedulerMode    string        `env:"SCHEDULER_MODE" envDefault:"local"`
	DealScanInterval time.Duration `env:"DEAL_SCAN_INTERVAL" envDefault:"3m"`
	BidCheckInterval time.Duration `env:"BID_CHECK_INTERVAL" envDefault:"30s"`
	CycleTimeout     time.Duration `env:"CYCLE_TIMEOUT" envDefault:"2m"`
	SearchLimit      int           `env:"SEARCH_LIMIT" envDefault:"10"`
	// DistributedLock включает redis-лок на цикл, если запущено несколько реплик.
	DistributedLock bool `env:"DISTRIBUTED_LOCK" envDefault:"false"`
}

type Asynq struct {
	Queue       string `env:"ASYNQ_QUEUE" envDefault:"monitoring"`
	Concurrency int    `env:"ASYNQ_CONCURRENCY" envDefault:"2"`
}
