package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel resolutions are published on
const DefaultChannel = "contest:resolved"

// RedisConfig holds configuration for the Redis publisher
type RedisConfig struct {
	RedisClient *redis.Client

	// Channel defaults to DefaultChannel
	Channel string
}

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedis creates a publisher that broadcasts resolutions as JSON
func NewRedis(cfg *RedisConfig) (*redisPublisher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	return &redisPublisher{
		client:  cfg.RedisClient,
		channel: channel,
	}, nil
}

// Publish sends the resolution to subscribers
func (p *redisPublisher) Publish(ctx context.Context, resolution *models.Resolution) error {
	if resolution == nil {
		return errors.New("resolution cannot be nil")
	}

	data, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish resolution: %w", err)
	}

	return nil
}
