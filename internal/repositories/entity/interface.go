package entity

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/contested/internal/repositories/entity Repository

import (
	"context"

	"github.com/KirkDiggler/contested/internal/models"
)

// Repository resolves the characters and monsters that take part in contests
type Repository interface {
	// SaveEntity persists an entity snapshot
	SaveEntity(ctx context.Context, input *SaveEntityInput) error

	// GetEntity retrieves an entity by ID
	GetEntity(ctx context.Context, input *GetEntityInput) (*models.Entity, error)
}
