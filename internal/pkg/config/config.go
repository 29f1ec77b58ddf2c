package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects the persistence layer: "memory" or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=memory"`

	Paystack PaystackConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type PaystackConfig struct {
	SecretKey     string `env:"PAYSTACK_SECRET_KEY"`
	WebhookSecret string `env:"PAYSTACK_WEBHOOK_SECRET"`
	BaseURL       string `env:"PAYSTACK_BASE_URL, default=https://api.paystack.co"`
	// AmountKobo is the tuition charge in the currency's minor unit.
	AmountKobo int64 `env:"PAYSTACK_AMOUNT_KOBO, default=500000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tuition_system"`
}

type RedisConfig struct {
	// Addr left empty disables the webhook delivery dedup cache.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
