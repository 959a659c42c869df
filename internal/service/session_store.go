package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SessionStore tracks which signed session tokens are still live. A token
// whose key is gone has been logged out even if its signature is valid.
type SessionStore interface {
	Open(ctx context.Context, accountID uint, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, accountID uint, tokenID string) (bool, error)
	Close(ctx context.Context, accountID uint, tokenID string) error
}

type redisSessionStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisSessionStore(redisClient *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{
		redisClient: redisClient,
		log:         log,
	}
}

// SessionKey is the Redis key for one session.
func SessionKey(accountID uint, tokenID string) string {
	return fmt.Sprintf("session:%d:%s", accountID, tokenID)
}

func (s *redisSessionStore) Open(ctx context.Context, accountID uint, tokenID string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, SessionKey(accountID, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisSessionStore) IsActive(ctx context.Context, accountID uint, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, SessionKey(accountID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) Close(ctx context.Context, accountID uint, tokenID string) error {
	if err := s.redisClient.Del(ctx, SessionKey(accountID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session from Redis: %+v", err)
		return err
	}
	return nil
}
