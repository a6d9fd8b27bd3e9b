package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func verifyTokenKey(token string) string {
	return "email:verify:token:" + token
}

// RedisVerificationStore keeps single-purpose email verification tokens.
// A token maps to an account id, expires on its own, and is consumed
// atomically on first use so a verification link only works once.
type RedisVerificationStore struct {
	RDB *redis.Client
}

func NewRedisVerificationStore(rdb *redis.Client) *RedisVerificationStore {
	return &RedisVerificationStore{RDB: rdb}
}

func (s *RedisVerificationStore) Put(ctx context.Context, token, accountID string, ttl time.Duration) error {
	return s.RDB.Set(ctx, verifyTokenKey(token), accountID, ttl).Err()
}

// Consume returns the account id for the token and deletes it in the same
// round trip. A missing or expired token returns ("", nil).
func (s *RedisVerificationStore) Consume(ctx context.Context, token string) (string, error) {
	id, err := s.RDB.GetDel(ctx, verifyTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
