package persistence

import (
	"context"
	"fmt"
	"io"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/joao-fontenele/storefront-crm/internal/telemetry"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Backend       string
	KeyPrefix     string
	PostgresURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open connects to the configured backend and checks it is reachable. The
// returned closer releases the connection.
func Open(ctx context.Context, cfg Config) (KV, io.Closer, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return WithPrefix(NewMemoryKV(), cfg.KeyPrefix), nopCloser{}, nil

	case BackendPostgres:
		db, err := telemetry.OpenDB("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		return WithPrefix(NewPostgresKV(db), cfg.KeyPrefix), db, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return WithPrefix(NewRedisKV(client), cfg.KeyPrefix), client, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
