package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN               string
	Environment         string
	LogLevel            string
	HTTPAddr            string
	MigrationsPath      string
	DefaultTimezone     string // зона для заявителей без сохранённой зоны
	TelegramToken       string // пустой токен отключает уведомления
	CompensateOnFailure bool
}

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
		DBDSN:           getenv("DB_DSN"),
		Environment:     getenv("ENV"),
		LogLevel:        getenv("LOG_LEVEL"),
		HTTPAddr:        getenv("HTTP_ADDR"),
		MigrationsPath:  getenv("MIGRATIONS_PATH"),
		DefaultTimezone: getenv("DEFAULT_TIMEZONE"),
		TelegramToken:   getenv("TELEGRAM_TOKEN"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = timezone.SystemZoneName()
	}

	if raw := getenv("COMPENSATE_ON_FAILURE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("COMPENSATE_ON_FAILURE must be a boolean: %w", err)
		}
		cfg.CompensateOnFailure = v
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.DefaultTimezone != "" {
		if _, err := timezone.LoadZone(cfg.DefaultTimezone); err != nil {
			return nil, fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
		}
	}

	return cfg, nil
}
