package contest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/contested/internal/models"
)

// SQLiteConfig holds configuration for the SQLite contest repository
type SQLiteConfig struct {
	DB *sql.DB
}

// sqliteRepository implements the Repository interface on a local database.
// Updates are conditional on the version column.
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed contest repository
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("sqlite db cannot be nil")
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

// CreateContest inserts a new contest at version 1
func (r *sqliteRepository) CreateContest(ctx context.Context, input *CreateContestInput) (*models.Contest, error) {
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO contests (id, channel_id, status, version, created_at, data) VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.ChannelID, string(stored.Status), stored.Version, stored.CreatedAt.UnixNano(), string(data),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrContestExists
		}
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	return stored, nil
}

// UpdateContest replaces the contest when the stored version matches
func (r *sqliteRepository) UpdateContest(ctx context.Context, input *UpdateContestInput) (*models.Contest, error) {
	if input == nil {
		return nil, errNilContest
	}
	if err := validateContest(input.Contest); err != nil {
		return nil, err
	}

	next := input.Contest.Clone()
	next.Version = input.Contest.Version + 1

	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contest: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE contests SET channel_id = ?, status = ?, version = ?, data = ? WHERE id = ? AND version = ?`,
		next.ChannelID, string(next.Status), next.Version, string(data), next.ID, input.Contest.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update contest: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update contest: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetContest(ctx, &GetContestInput{ContestID: next.ID}); err != nil {
			return nil, err
		}
		return nil, ErrVersionConflict
	}

	return next, nil
}

// GetContest retrieves a contest by ID
func (r *sqliteRepository) GetContest(ctx context.Context, input *GetContestInput) (*models.Contest, error) {
	if input == nil || input.ContestID == "" {
		return nil, errEmptyID
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM contests WHERE id = ?`, input.ContestID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

// DeleteContest removes a contest
func (r *sqliteRepository) DeleteContest(ctx context.Context, input *DeleteContestInput) error {
	if input == nil || input.ContestID == "" {
		return errEmptyID
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM contests WHERE id = ?`, input.ContestID)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	if affected == 0 {
		return ErrContestNotFound
	}

	return nil
}

// ListPendingContests retrieves pending contests in a channel, oldest first
func (r *sqliteRepository) ListPendingContests(ctx context.Context, input *ListPendingContestsInput) (*ListPendingContestsOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM contests WHERE channel_id = ? AND status = ? ORDER BY created_at, id`,
		input.ChannelID, string(models.ContestStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending contests: %w", err)
	}
	defer rows.Close()

	contests := []*models.Contest{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}

		var contest models.Contest
		if err := json.Unmarshal([]byte(data), &contest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contest: %w", err)
		}
		contests = append(contests, &contest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pending contests: %w", err)
	}

	return &ListPendingContestsOutput{Contests: contests}, nil
}
