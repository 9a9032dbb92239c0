package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

const minSecretLen = 32

type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret    string        `env:"JWT_SECRET,required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
	MetricsToken string        `env:"METRICS_TOKEN"`

	// Empty DatabaseURL keeps the catalog in memory.
	DatabaseURL    string        `env:"DATABASE_URL"`
	DBConnectWait  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"1m"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL       time.Duration `env:"REDIS_TTL" envDefault:"10m"`
	KafkaBrokers   []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic     string        `env:"KAFKA_TOPIC" envDefault:"ministore.payments"`
	EventQueueSize int           `env:"EVENT_QUEUE_SIZE" envDefault:"1024"`

	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.JWTSecret) < minSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}
	if cfg.EventQueueSize <= 0 {
		return nil, errors.New("EVENT_QUEUE_SIZE must be positive")
	}

	return &cfg, nil
}
