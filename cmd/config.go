package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	RabbitMQURL         string
	OrderEventsExchange string

	RedisAddr     string
	RedisPassword string
	OrderLockTTL  time.Duration
	OrderLockWait time.Duration

	OutboxBatchSize int
}

// LoadConfig reads the environment, after loading .env when one exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	lockTTL, err := getDuration("ORDER_LOCK_TTL", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	lockWait, err := getDuration("ORDER_LOCK_WAIT", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	batchSize, err := getInt("OUTBOX_BATCH_SIZE", 100)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", "fulfillment"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		RabbitMQURL:         getEnv("RABBITMQ_URL", ""),
		OrderEventsExchange: getEnv("ORDER_EVENTS_EXCHANGE", "fulfillment.events"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		OrderLockTTL:        lockTTL,
		OrderLockWait:       lockWait,
		OutboxBatchSize:     batchSize,
	}
	if config.JWTSecret == "" {
		return Config{}, errs.NewValueIsRequiredError("JWT_SECRET")
	}
	return config, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}
