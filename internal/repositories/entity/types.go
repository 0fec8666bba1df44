package entity

import (
	"errors"

	"github.com/KirkDiggler/contested/internal/models"
)

// ErrEntityNotFound is returned when an entity is not found
var ErrEntityNotFound = errors.New("entity not found")

// SaveEntityInput contains parameters for saving an entity
type SaveEntityInput struct {
	Entity *models.Entity
}

// GetEntityInput contains parameters for retrieving an entity
type GetEntityInput struct {
	EntityID string
}
