package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned for missing or expired sessions
var ErrNotFound = errors.New("session not found")

// Store keeps web sessions: an opaque token mapped to a user id with a TTL.
// The cookie surface authenticates through it; the API surface uses JWT.
type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed session store
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	token := uuid.New().String()
	err := s.client.Set(ctx, keyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(userID), nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
