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

	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Orders OrdersConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fieldops"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuthConfig struct {
	// Reserved master credential pair; always authenticates as ADMIN and
	// provisions its own record on first use.
	MasterEmail  string `env:"AUTH_MASTER_EMAIL,  default=cops@cops.com"`
	MasterSecret string `env:"AUTH_MASTER_SECRET, default=cops1234"`
	// EnforceUniqueEmail rejects registrations reusing an existing email.
	EnforceUniqueEmail bool `env:"AUTH_ENFORCE_UNIQUE_EMAIL, default=false"`
}

type OrdersConfig struct {
	// StrictTransitions enforces the status state machine on updates.
	StrictTransitions bool `env:"ORDERS_STRICT_TRANSITIONS, default=false"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
