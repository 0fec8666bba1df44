package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/contested/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetContestSummary renders a contest from its record alone
	GetContestSummary(ctx context.Context, input *GetContestSummaryInput) (*GetContestSummaryOutput, error)

	// GetSubmissionMessage returns the user-facing reply to a roll or decline
	GetSubmissionMessage(ctx context.Context, input *GetSubmissionMessageInput) (*GetSubmissionMessageOutput, error)
}
