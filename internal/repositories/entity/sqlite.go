package entity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/contested/internal/models"
)

// SQLiteConfig holds configuration for the SQLite entity repository
type SQLiteConfig struct {
	DB *sql.DB
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed entity repository
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("sqlite db cannot be nil")
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

// SaveEntity inserts or replaces an entity
func (r *sqliteRepository) SaveEntity(ctx context.Context, input *SaveEntityInput) error {
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO entities (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		input.Entity.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// GetEntity retrieves an entity by ID
func (r *sqliteRepository) GetEntity(ctx context.Context, input *GetEntityInput) (*models.Entity, error) {
	if input == nil || input.EntityID == "" {
		return nil, errors.New("input and entity ID cannot be empty")
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM entities WHERE id = ?`, input.EntityID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
