package config

import (
	"time"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Database  DatabaseConfig  `yaml:"database"`
	Provider  ProviderConfig  `yaml:"provider"`
	Quiz      QuizConfig      `yaml:"quiz"`
	Share     ShareConfig     `yaml:"share"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig selects the Example Store backend.
type StoreConfig struct {
	Driver    domain.StoreDriver `yaml:"driver"     env:"STORE_DRIVER"     env-default:"mongo"`
	OpTimeout time.Duration      `yaml:"op_timeout" env:"STORE_OP_TIMEOUT" env-default:"5s"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI                  string `yaml:"uri"                   env:"MONGO_URI"`
	Database             string `yaml:"database"              env:"MONGO_DATABASE"              env-default:"portfolio_project"`
	DictionaryCollection string `yaml:"dictionary_collection" env:"MONGO_DICTIONARY_COLLECTION" env-default:"dictionary"`
	QuizCollection       string `yaml:"quiz_collection"       env:"MONGO_QUIZ_COLLECTION"       env-default:"quizzes"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// ProviderConfig holds settings for the word-examples API.
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url" env:"WORDNIK_BASE_URL" env-default:"https://api.wordnik.com/v4"`
	APIKey  string        `yaml:"api_key"  env:"WORDNIK_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"WORDNIK_TIMEOUT"  env-default:"5s"`
	Limit   int           `yaml:"limit"    env:"WORDNIK_LIMIT"    env-default:"10"`
}

// QuizConfig holds quiz-building settings.
type QuizConfig struct {
	SessionTTL  time.Duration `yaml:"session_ttl"  env:"QUIZ_SESSION_TTL"  env-default:"1h"`
	MaxSessions int           `yaml:"max_sessions" env:"QUIZ_MAX_SESSIONS" env-default:"1000"`
	// SessionSweep is how often idle and finished sessions are evicted.
	SessionSweep time.Duration `yaml:"session_sweep" env:"QUIZ_SESSION_SWEEP" env-default:"1m"`
}

// ShareConfig describes how share links for persisted quizzes are built.
type ShareConfig struct {
	AppURL     string `yaml:"app_url"     env:"SHARE_APP_URL"     env-default:"http://localhost:8080/"`
	TargetPage string `yaml:"target_page" env:"SHARE_TARGET_PAGE" env-default:"Quiz_Taker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits how often a client may hit endpoints that reach the
// word-examples API.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
