package contest

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/contested/internal/repositories/contest Repository

import (
	"context"

	"github.com/KirkDiggler/contested/internal/models"
)

// Repository persists contest records. Every write is a full replacement
// guarded by the record's Version.
type Repository interface {
	// CreateContest stores a new record at version 1
	CreateContest(ctx context.Context, input *CreateContestInput) (*models.Contest, error)

	// UpdateContest replaces a record if the stored version still matches
	// input.Contest.Version, returning the stored copy at the next version
	UpdateContest(ctx context.Context, input *UpdateContestInput) (*models.Contest, error)

	// GetContest retrieves a contest by ID
	GetContest(ctx context.Context, input *GetContestInput) (*models.Contest, error)

	// DeleteContest removes a contest
	DeleteContest(ctx context.Context, input *DeleteContestInput) error

	// ListPendingContests retrieves unresolved contests in a channel
	ListPendingContests(ctx context.Context, input *ListPendingContestsInput) (*ListPendingContestsOutput, error)
}
