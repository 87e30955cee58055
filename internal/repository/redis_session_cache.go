package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finsakhi-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check
var _ SessionRepository = (*redisSessionCache)(nil)

// redisSessionCache is a read-through cache in front of another
// SessionRepository. Cache failures are logged and degrade to the inner
// repository; they never fail a gameplay request.
type redisSessionCache struct {
	inner  SessionRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionCache wraps inner with a redis read-through cache.
func NewRedisSessionCache(inner SessionRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) SessionRepository {
	return &redisSessionCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionCache"),
	}
}

func sessionCacheKey(userID string) string {
	return fmt.Sprintf("game_session:%s", userID)
}

func (c *redisSessionCache) GetByUser(ctx context.Context, userID string) (*models.Session, error) {
	key := sessionCacheKey(userID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var session models.Session
		if unmarshalErr := json.Unmarshal(payload, &session); unmarshalErr == nil {
			return &session, nil
		}
		// A corrupt entry is dropped and reloaded from the source of truth.
		c.logger.Warn("Dropping undecodable cached session", zap.String("userID", userID))
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Session cache read failed", zap.String("userID", userID), zap.Error(err))
	}

	session, err := c.inner.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, session)
	return session, nil
}

func (c *redisSessionCache) Save(ctx context.Context, session *models.Session) error {
	if err := c.inner.Save(ctx, session); err != nil {
		return err
	}
	c.put(ctx, session)
	return nil
}

func (c *redisSessionCache) DeleteByUser(ctx context.Context, userID string) error {
	if err := c.inner.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := c.client.Del(ctx, sessionCacheKey(userID)).Err(); err != nil {
		c.logger.Warn("Session cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

func (c *redisSessionCache) put(ctx context.Context, session *models.Session) {
	payload, err := json.Marshal(session)
	if err != nil {
		c.logger.Warn("Failed to encode session for cache", zap.String("userID", session.UserID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, sessionCacheKey(session.UserID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Session cache write failed", zap.String("userID", session.UserID), zap.Error(err))
	}
}
