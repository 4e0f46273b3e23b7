package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// SecretFile is where Docker mounts the bot token secret.
var SecretFile = "/run/secrets/telegram_bot_token"

type Config struct {
	DataDir     string `env:"DIARY_DATA_DIR"     env-default:"./data"`
	DBName      string `env:"DIARY_DB_NAME"      env-default:"health_diary.db"`
	PrefsName   string `env:"DIARY_PREFS_NAME"   env-default:"health_diary_prefs.db"`
	HistoryName string `env:"DIARY_HISTORY_NAME" env-default:"history.bin"`
	Workers     int    `env:"DIARY_WORKERS"      env-default:"4"`
	TZ          string `env:"DIARY_TZ"           env-default:"Europe/Moscow"`
	ReminderAt  string `env:"DIARY_REMINDER_AT"  env-default:"20:00"` // "HH:MM"

	Export   ExportConfig
	Telegram TelegramConfig
	Log      LogConfig
}

type ExportConfig struct {
	Backend string `env:"DIARY_EXPORT_BACKEND" env-default:"file"` // file | minio
	Dir     string `env:"DIARY_EXPORT_DIR"     env-default:"./documents"`
	Name    string `env:"DIARY_EXPORT_NAME"    env-default:"health_report_export.bin"`

	MinIOEndpoint  string `env:"MINIO_ENDPOINT"`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY"`
	MinIOBucket    string `env:"MINIO_BUCKET"  env-default:"health-diary"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

type TelegramConfig struct {
	Token       string `env:"TELEGRAM_BOT_TOKEN"`
	OwnerChatID int64  `env:"TELEGRAM_OWNER_CHAT_ID" env-default:"0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"` // text | json
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("DIARY_WORKERS must be >= 1, got %d", c.Workers))
	}
	if _, err := time.LoadLocation(c.TZ); err != nil {
		errs = append(errs, fmt.Errorf("DIARY_TZ: %w", err))
	}
	if _, _, err := c.ReminderClock(); err != nil {
		errs = append(errs, err)
	}
	switch c.Export.Backend {
	case "file":
	case "minio":
		if c.Export.MinIOEndpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required for the minio export backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("DIARY_EXPORT_BACKEND: unknown backend %q", c.Export.Backend))
	}
	return errors.Join(errs...)
}

// ReminderClock parses ReminderAt.
func (c *Config) ReminderClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.ReminderAt)
	if err != nil {
		return 0, 0, fmt.Errorf("DIARY_REMINDER_AT %q: want HH:MM", c.ReminderAt)
	}
	return t.Hour(), t.Minute(), nil
}

// Location is the diary's time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) DBPath() string      { return filepath.Join(c.DataDir, c.DBName) }
func (c *Config) PrefsPath() string   { return filepath.Join(c.DataDir, c.PrefsName) }
func (c *Config) HistoryPath() string { return filepath.Join(c.DataDir, c.HistoryName) }

// BotToken prefers the Docker secret over TELEGRAM_BOT_TOKEN.
func (c *Config) BotToken() (string, error) {
	if data, err := os.ReadFile(SecretFile); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	}
	if token := strings.TrimSpace(c.Telegram.Token); token != "" {
		return token, nil
	}
	return "", errors.New("telegram token not found: neither Docker secret nor TELEGRAM_BOT_TOKEN is set")
}
