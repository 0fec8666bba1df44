package contest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	contestKeyPrefix        = "contest:"
	channelPendingKeyPrefix = "channel_pending:"
)

// Config holds configuration for the Redis contest repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed contest repository
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

func contestKey(id string) string {
	return fmt.Sprintf("%s%s", contestKeyPrefix, id)
}

func channelPendingKey(channelID string) string {
	return fmt.Sprintf("%s%s", channelPendingKeyPrefix, channelID)
}

// CreateContest stores a new contest at version 1
func (r *redisRepository) CreateContest(ctx context.Context, input *CreateContestInput) (*models.Contest, error) {
	if input == nil {
		return nil, errNilContest
	}
	if err := validateContest(input.Contest); err != nil {
		return nil, err
	}

	stored := input.Contest.Clone()
	stored.Version = 1

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contest: %w", err)
	}

	key := contestKey(stored.ID)

	// The record and its channel index are written in one MULTI
	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrContestExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return r.indexChannel(ctx, pipe, stored)
		})
		if err != nil {
			// Redis does not roll back a MULTI, so drop a half-written record
			r.client.Del(ctx, key)
		}
		return err
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) || errors.Is(err, ErrContestExists) {
			return nil, ErrContestExists
		}
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	return stored, nil
}

// UpdateContest replaces the record under WATCH so a concurrent writer
// aborts the transaction instead of clobbering it
func (r *redisRepository) UpdateContest(ctx context.Context, input *UpdateContestInput) (*models.Contest, error) {
	if input == nil {
		return nil, errNilContest
	}
	if err := validateContest(input.Contest); err != nil {
		return nil, err
	}

	key := contestKey(input.Contest.ID)
	next := input.Contest.Clone()
	next.Version = input.Contest.Version + 1

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrContestNotFound
			}
			return fmt.Errorf("failed to get contest: %w", err)
		}

		var stored models.Contest
		if err := json.Unmarshal([]byte(current), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal contest: %w", err)
		}
		if stored.Version != input.Contest.Version {
			return ErrVersionConflict
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal contest: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return r.indexChannel(ctx, pipe, next)
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrVersionConflict
		}
		if errors.Is(err, ErrContestNotFound) || errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update contest: %w", err)
	}

	return next, nil
}

// indexChannel keeps the channel's pending set in step with the status
func (r *redisRepository) indexChannel(ctx context.Context, cmd redis.Cmdable, c *models.Contest) error {
	if c.ChannelID == "" {
		return nil
	}

	var err error
	if c.Status.IsPending() {
		err = cmd.SAdd(ctx, channelPendingKey(c.ChannelID), c.ID).Err()
	} else {
		err = cmd.SRem(ctx, channelPendingKey(c.ChannelID), c.ID).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to index contest: %w", err)
	}
	return nil
}

// GetContest retrieves a contest by ID from Redis
func (r *redisRepository) GetContest(ctx context.Context, input *GetContestInput) (*models.Contest, error) {
	if input == nil || input.ContestID == "" {
		return nil, errEmptyID
	}

	data, err := r.client.Get(ctx, contestKey(input.ContestID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}

	var contest models.Contest
	if err := json.Unmarshal([]byte(data), &contest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contest: %w", err)
	}

	return &contest, nil
}

// DeleteContest removes a contest from Redis
func (r *redisRepository) DeleteContest(ctx context.Context, input *DeleteContestInput) error {
	if input == nil || input.ContestID == "" {
		return errEmptyID
	}

	contest, err := r.GetContest(ctx, &GetContestInput{ContestID: input.ContestID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, contestKey(input.ContestID))
	if contest.ChannelID != "" {
		pipe.SRem(ctx, channelPendingKey(contest.ChannelID), input.ContestID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}

	return nil
}

// ListPendingContests retrieves all pending contests in a channel
func (r *redisRepository) ListPendingContests(ctx context.Context, input *ListPendingContestsInput) (*ListPendingContestsOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	ids, err := r.client.SMembers(ctx, channelPendingKey(input.ChannelID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending contest IDs: %w", err)
	}

	if len(ids) == 0 {
		return &ListPendingContestsOutput{
			Contests: []*models.Contest{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.Get(ctx, contestKey(id))
	}

	// redis.Nil for individual keys surfaces through Exec; handle per command
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get pending contests: %w", err)
	}

	contests := make([]*models.Contest, 0, len(ids))
	for id, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Contest was deleted between listing and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get contest %s: %w", id, err)
		}

		var contest models.Contest
		if err := json.Unmarshal([]byte(data), &contest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contest %s: %w", id, err)
		}

		if contest.Status.IsPending() {
			contests = append(contests, &contest)
		}
	}

	sortByCreated(contests)

	return &ListPendingContestsOutput{
		Contests: contests,
	}, nil
}
