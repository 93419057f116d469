package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dialTimeout bounds the startup ping so a missing redis fails fast.
const dialTimeout = 5 * time.Second

// RedisOptions locate the redis that keeps live games, results and play streams.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

type RedisStorage struct {
	Connection *redis.Client
}

func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	storage := &RedisStorage{Connection: conn}

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := storage.Ping(pingCtx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return storage, nil
}

// Ping reports whether the game store answers; the health route serves it.
func (that *RedisStorage) Ping(ctx context.Context) error {
	if err := that.Connection.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("game store unreachable at %s: %w", that.Connection.Options().Addr, err)
	}
	return nil
}
