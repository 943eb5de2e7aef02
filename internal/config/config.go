package config

import (
	"errors"
	"github.com/spf13/viper"
	"io/fs"
	"strings"
	"time"
)

// DefaultPath is the location of the optional YAML configuration file.
const DefaultPath = "configs/config.yaml"

// Config is the main struct that holds all configuration for the application.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Notifiers NotifiersConfig `mapstructure:"notifiers"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json".
	Output string `mapstructure:"output"` // "stdout" or "stderr".
}

// HTTPConfig holds HTTP server-specific settings.
type HTTPConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// JournalConfig selects where delivery events are recorded.
type JournalConfig struct {
	// Backend is either "memory" or "postgres".
	Backend string `mapstructure:"backend"`
}

// PostgresConfig holds all settings for the PostgreSQL database connection.
type PostgresConfig struct {
	DSN  string     `mapstructure:"dsn"`
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig defines the connection pool settings for the database.
type PoolConfig struct {
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds all settings for the Redis connection.
// The cache is disabled while Addr is empty.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NotifiersConfig holds configurations for all notification channels.
type NotifiersConfig struct {
	// Mode can be "log_only" or "production".
	// In "log_only" mode, every channel emits its deliveries to the log.
	Mode string `mapstructure:"mode"`
	// Channels lists the channels in invocation order.
	Channels []string       `mapstructure:"channels"`
	Email    EmailConfig    `mapstructure:"email"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// EmailConfig holds SMTP settings for the email channel.
type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Subject  string `mapstructure:"subject"`
}

// TelegramConfig holds settings for the Telegram channel.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// NewConfig parses the default YAML file and environment variables to return a configuration struct.
func NewConfig() (*Config, error) {
	return Load(DefaultPath)
}

// Load reads the configuration from path. A missing file is not an error:
// defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("http.port", ":8080")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("journal.backend", "memory")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.pool.max_conns", 10)
	v.SetDefault("postgres.pool.min_conns", 0)
	v.SetDefault("postgres.pool.conn_max_lifetime", time.Hour)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("notifiers.mode", "log_only")
	v.SetDefault("notifiers.channels", []string{"email", "sms", "push", "whatsapp"})
	v.SetDefault("notifiers.email.host", "")
	v.SetDefault("notifiers.email.port", 587)
	v.SetDefault("notifiers.email.username", "")
	v.SetDefault("notifiers.email.password", "")
	v.SetDefault("notifiers.email.from", "")
	v.SetDefault("notifiers.email.subject", "Notification")
	v.SetDefault("notifiers.telegram.bot_token", "")
	v.SetDefault("notifiers.telegram.chat_id", 0)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
