package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/redis/go-redis/v9"
)

const entityKeyPrefix = "entity:"

// Config holds configuration for the Redis entity repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed entity repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveEntity persists an entity to Redis
func (r *redisRepository) SaveEntity(ctx context.Context, input *SaveEntityInput) error {
	if input == nil || input.Entity == nil {
		return errors.New("input and entity cannot be nil")
	}
	if input.Entity.ID == "" {
		return errors.New("entity ID cannot be empty")
	}

	data, err := json.Marshal(input.Entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	key := fmt.Sprintf("%s%s", entityKeyPrefix, input.Entity.ID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// GetEntity retrieves an entity by ID from Redis
func (r *redisRepository) GetEntity(ctx context.Context, input *GetEntityInput) (*models.Entity, error) {
	if input == nil || input.EntityID == "" {
		return nil, errors.New("input and entity ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", entityKeyPrefix, input.EntityID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	var entity models.Entity
	if err := json.Unmarshal([]byte(data), &entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}

	return &entity, nil
}
