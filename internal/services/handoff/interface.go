package handoff

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/contested/internal/services/handoff Publisher

import (
	"context"

	"github.com/KirkDiggler/contested/internal/models"
)

// Publisher hands a resolved contest to the damage and healing pipeline.
// Implementations must not mutate entities themselves.
type Publisher interface {
	Publish(ctx context.Context, resolution *models.Resolution) error
}
