package kvredis

import (
	"context"
	"fmt"

	"reservation_service/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Repo implements the kv.Store capability on top of Redis, for deployments
// where the cart should survive the local filesystem.
type Repo struct {
	client *redis.Client
}

func New(ctx context.Context, address string, password string, db int) (*Repo, error) {
	const op = "storage.kvredis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Repo{client: rdb}, nil
}

func (r *Repo) Get(ctx context.Context, key string) (string, error) {
	const op = "storage.kvredis.Get"

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", storage.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return val, nil
}

func (r *Repo) Set(ctx context.Context, key string, value string) error {
	const op = "storage.kvredis.Set"

	// Carts live until cleared, so no TTL.
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает соединение с базой данных.
func (r *Repo) Close() {
	r.client.Close()
}
