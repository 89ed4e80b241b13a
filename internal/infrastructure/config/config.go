package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Upload  UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quotation_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	// TTL is the absolute session (and cookie token) lifetime.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// IdleTimeout logs a session out after this much inactivity.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT, default=30m"`
	// DriftInterval is the role-drift watcher's polling interval.
	DriftInterval time.Duration `env:"SESSION_DRIFT_INTERVAL, default=10s"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR,         default=uploads"`
	MaxSizeMB int64  `env:"UPLOAD_MAX_SIZE_MB, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
