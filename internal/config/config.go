package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Translator TranslatorConfig `yaml:"translator"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// AuthRateLimit caps login/signup attempts per IP per minute.
	AuthRateLimit int `yaml:"auth_rate_limit" env:"SERVER_AUTH_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// AuthConfig holds account and session settings.
type AuthConfig struct {
	SessionTTL             time.Duration `yaml:"session_ttl"              env:"AUTH_SESSION_TTL"              env-default:"168h"`
	SessionCleanupInterval time.Duration `yaml:"session_cleanup_interval" env:"AUTH_SESSION_CLEANUP_INTERVAL" env-default:"1h"`
	PasswordHashCost       int           `yaml:"password_hash_cost"       env:"AUTH_PASSWORD_HASH_COST"       env-default:"10"`
}

// TranslatorConfig holds settings for the external translation provider.
type TranslatorConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"TRANSLATOR_BASE_URL"    env-default:"https://translate.googleapis.com"`
	TargetLang string        `yaml:"target_lang" env:"TRANSLATOR_TARGET_LANG" env-default:"zh-TW"`
	SourceLang string        `yaml:"source_lang" env:"TRANSLATOR_SOURCE_LANG" env-default:"en"`
	Timeout    time.Duration `yaml:"timeout"     env:"TRANSLATOR_TIMEOUT"     env-default:"10s"`
}

// QuizConfig holds quiz generation settings.
type QuizConfig struct {
	// OptionCount is the total number of multiple-choice options per
	// question (one correct plus OptionCount-1 distractors).
	OptionCount int `yaml:"option_count" env:"QUIZ_OPTION_COUNT" env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
