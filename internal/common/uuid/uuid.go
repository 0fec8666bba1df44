package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/contested/internal/common/uuid UUID

// UUID hands out contest identifiers
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random v4 identifiers
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
