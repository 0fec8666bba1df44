package contest

import (
	"errors"

	"github.com/KirkDiggler/contested/internal/models"
)

var (
	// ErrContestNotFound is returned when a contest is not found
	ErrContestNotFound = errors.New("contest not found")

	// ErrContestExists is returned when creating a contest whose ID is taken
	ErrContestExists = errors.New("contest already exists")

	// ErrVersionConflict is returned when the stored record moved on since it was read
	ErrVersionConflict = errors.New("contest was modified concurrently")

	errNilContest = errors.New("input and contest cannot be nil")
	errEmptyID    = errors.New("input and contest ID cannot be empty")
)

type CreateContestInput struct {
	Contest *models.Contest
}

type UpdateContestInput struct {
	Contest *models.Contest
}

type GetContestInput struct {
	ContestID string
}

type DeleteContestInput struct {
	ContestID string
}

type ListPendingContestsInput struct {
	ChannelID string
}

type ListPendingContestsOutput struct {
	Contests []*models.Contest
}

func validateContest(c *models.Contest) error {
	if c == nil {
		return errNilContest
	}
	if c.ID == "" {
		return errEmptyID
	}
	return nil
}
