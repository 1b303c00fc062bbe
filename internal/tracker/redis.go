package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultRedisKey holds the date when no key is configured.
const DefaultRedisKey = "parlvotes:last_vote_day"

// RedisStore keeps the date under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects using a redis:// URL.
func NewRedisStore(rawURL, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: redis.NewClient(opts), key: key}, nil
}

func (s *RedisStore) Read(ctx context.Context) (string, bool) {
	date, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		log.Info().Str("key", s.key).Msg("tracking key not found; assuming first run")
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("read tracking key")
		return "", false
	}
	log.Info().Str("date", date).Str("key", s.key).Msg("read last processed date")
	return date, true
}

func (s *RedisStore) Write(ctx context.Context, date string) error {
	log.Info().Str("date", date).Str("key", s.key).Msg("writing last processed date")
	if err := s.client.Set(ctx, s.key, date, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
