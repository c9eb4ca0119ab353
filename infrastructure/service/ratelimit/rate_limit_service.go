package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
}

// redisRateLimitService keeps fixed-window counters and block markers in Redis.
type redisRateLimitService struct {
	redisClient *redis.Client
	logger      logger.Logger
}

// NewRateLimitService connects to Redis, or returns a no-op limiter when rate limiting is
// disabled or no Redis URL is configured.
func NewRateLimitService(config RateLimitConfig, log logger.Logger) (inbound.RateLimitService, error) {
	ctx := context.Background()
	if !config.Enabled {
		log.Info(ctx, "Rate limiting disabled", nil)
		return NoopRateLimitService{}, nil
	}
	if config.RedisURL == "" {
		log.Warn(ctx, "Rate limiting enabled without REDIS_URL, requests will not be limited", nil)
		return NoopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(ctx, "Rate limiting service initialized", map[string]interface{}{"redis_addr": opt.Addr})
	return NewRedisRateLimitService(redisClient, log), nil
}

func NewRedisRateLimitService(client *redis.Client, log logger.Logger) inbound.RateLimitService {
	return &redisRateLimitService{
		redisClient: client,
		logger:      log,
	}
}

// CheckLimit reports whether key is still under limit in the current window.
func (s *redisRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	currentCount, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}
	return currentCount < limit, nil
}

// Increment counts an attempt. The window starts with the first attempt and is not extended
// by later ones.
func (s *redisRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	s.logger.Debug(ctx, "Rate limit incremented", map[string]interface{}{
		"key":    key,
		"count":  count,
		"window": window.String(),
	})
	return nil
}

func (s *redisRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := blockKeyFor(key)

	blockData := map[string]interface{}{
		"reason":         reason,
		"blocked_at":     time.Now().Unix(),
		"duration":       duration.Seconds(),
		"correlation_id": logger.CorrelationID(ctx),
	}

	pipeline := s.redisClient.TxPipeline()
	pipeline.HSet(ctx, blockKey, blockData)
	pipeline.Expire(ctx, blockKey, duration)
	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.Warn(ctx, "Key blocked due to rate limit exceeded", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

func (s *redisRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, blockKeyFor(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

func (s *redisRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.redisClient.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

func blockKeyFor(key string) string {
	return "blocked:" + key
}

// NoopRateLimitService allows everything.
type NoopRateLimitService struct{}

func (NoopRateLimitService) CheckLimit(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (NoopRateLimitService) Increment(context.Context, string, time.Duration) error { return nil }

func (NoopRateLimitService) Block(context.Context, string, time.Duration, string) error { return nil }

func (NoopRateLimitService) IsBlocked(context.Context, string) (bool, error) { return false, nil }

func (NoopRateLimitService) GetAttempts(context.Context, string) (int, error) { return 0, nil }
