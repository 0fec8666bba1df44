package contest

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/contested/internal/services/contest Service

import (
	"context"

	"github.com/KirkDiggler/contested/internal/models"
)

// Service coordinates the lifecycle of opposed rolls
type Service interface {
	// CreateContest opens a pending contest between two entities
	CreateContest(ctx context.Context, input *CreateContestInput) (*CreateContestOutput, error)

	// SubmitRoll rolls for one side of a contest
	SubmitRoll(ctx context.Context, input *SubmitRollInput) (*SubmitRollOutput, error)

	// DeclineDefense records that the defender forgoes rolling
	DeclineDefense(ctx context.Context, input *DeclineDefenseInput) (*DeclineDefenseOutput, error)

	// GetContest retrieves a contest
	GetContest(ctx context.Context, input *GetContestInput) (*GetContestOutput, error)

	// ListPendingContests retrieves unresolved contests in a channel
	ListPendingContests(ctx context.Context, input *ListPendingContestsInput) (*ListPendingContestsOutput, error)

	// AttachMessage records the chat message presenting the contest
	AttachMessage(ctx context.Context, input *AttachMessageInput) (*AttachMessageOutput, error)

	// DiscardContest abandons a pending contest
	DiscardContest(ctx context.Context, input *DiscardContestInput) (*DiscardContestOutput, error)
}

// Listener is told about every persisted change to a contest
type Listener interface {
	ContestUpdated(ctx context.Context, contest *models.Contest)
}

// ListenerFunc adapts a function to a Listener
type ListenerFunc func(ctx context.Context, contest *models.Contest)

// ContestUpdated calls f
func (f ListenerFunc) ContestUpdated(ctx context.Context, contest *models.Contest) {
	f(ctx, contest)
}
