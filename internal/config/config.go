package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken         string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN                 string        `mapstructure:"DB_DSN"`
	Environment           string        `mapstructure:"ENV"`
	ApproverID            int64         `mapstructure:"APPROVER_ID"`
	RabbitMQURL           string        `mapstructure:"RABBITMQ_URL"`
	NotifyBuffer          int           `mapstructure:"NOTIFY_BUFFER"`
	PendingDigestInterval time.Duration `mapstructure:"PENDING_DIGEST_INTERVAL"`
	CalendarDays          int           `mapstructure:"CALENDAR_DAYS"`
}

const (
	defaultNotifyBuffer          = 64
	defaultPendingDigestInterval = 24 * time.Hour
	defaultCalendarDays          = 7
)

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:         getenv("DB_DSN"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		Environment:   getenv("ENV"),
		RabbitMQURL:   getenv("RABBITMQ_URL"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	approver := getenv("APPROVER_ID")
	if approver == "" {
		return nil, fmt.Errorf("APPROVER_ID is required but not set")
	}
	approverID, err := strconv.ParseInt(approver, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("APPROVER_ID must be a telegram user id: %w", err)
	}
	cfg.ApproverID = approverID

	if cfg.NotifyBuffer, err = intOr(getenv("NOTIFY_BUFFER"), defaultNotifyBuffer); err != nil {
		return nil, fmt.Errorf("NOTIFY_BUFFER: %w", err)
	}
	if cfg.CalendarDays, err = intOr(getenv("CALENDAR_DAYS"), defaultCalendarDays); err != nil {
		return nil, fmt.Errorf("CALENDAR_DAYS: %w", err)
	}

	cfg.PendingDigestInterval = defaultPendingDigestInterval
	if v := getenv("PENDING_DIGEST_INTERVAL"); v != "" {
		if cfg.PendingDigestInterval, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("PENDING_DIGEST_INTERVAL: %w", err)
		}
	}

	return cfg, nil
}

// RequireTelegram проверяет токен, нужен только для запуска бота
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func intOr(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
