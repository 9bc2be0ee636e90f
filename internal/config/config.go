package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joao-fontenele/storefront-crm/internal/persistence"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Storage   persistence.Config
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Notifier  NotifierConfig

	MigrationsPath           string
	ReconcileOrderAggregates bool
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type LoggerConfig struct {
	Level string
}

// KafkaConfig with no brokers disables change events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

type NotifierConfig struct {
	MailRelayURL string
}

// Load reads the environment, after loading a .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "production"),
			Port:   getEnv("PORT", "8080"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Storage: persistence.Config{
			Backend:       getEnv("STORAGE_BACKEND", persistence.BackendMemory),
			KeyPrefix:     getEnv("STORAGE_KEY_PREFIX", "crm-"),
			PostgresURL:   getEnv("POSTGRES_URL", ""),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "crm.changes"),
			GroupID: getEnv("KAFKA_GROUP_ID", "crm-notifier"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
		Notifier: NotifierConfig{
			MailRelayURL: getEnv("MAIL_RELAY_URL", ""),
		},
		MigrationsPath:           getEnv("MIGRATIONS_PATH", "file://migrations"),
		ReconcileOrderAggregates: getEnvBool("RECONCILE_ORDER_AGGREGATES", false),
	}
}

func (c Config) Development() bool {
	return c.Server.AppEnv == "development"
}

// NewLogger builds the process logger: JSON in production, text while
// developing.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Logger.Level)}
	if c.Development() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
