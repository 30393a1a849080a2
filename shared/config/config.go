// Package config loads process configuration from the environment into an
// envconfig-tagged struct, with a local .env loaded first via godotenv for
// development the same way cmd/migrate does.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the single struct covering every environment variable this
// service reads at startup.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:"0.0.0.0:3000"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	LogDir      string `envconfig:"LOG_DIR"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	QueueCapacity int `envconfig:"QUEUE_CAPACITY" default:"100"`
	RateLimitRPS  int `envconfig:"RATE_LIMIT_RPS" default:"10"`
	DBPoolSize    int `envconfig:"DB_POOL_SIZE" default:"10"`

	RedisAddr        string `envconfig:"REDIS_ADDR"`
	RedisRateLimiter bool   `envconfig:"REDIS_RATE_LIMITER" default:"false"`

	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"flashsale.events"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	FulfillmentMaxRetries int `envconfig:"FULFILLMENT_MAX_RETRIES" default:"3"`
}

// Load reads a local .env (if present, ignored if absent) and then
// populates Config from the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
