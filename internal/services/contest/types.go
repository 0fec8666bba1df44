package contest

import (
	"github.com/KirkDiggler/contested/internal/common/clock"
	"github.com/KirkDiggler/contested/internal/common/uuid"
	"github.com/KirkDiggler/contested/internal/dice"
	"github.com/KirkDiggler/contested/internal/metrics"
	"github.com/KirkDiggler/contested/internal/models"
	contestRepo "github.com/KirkDiggler/contested/internal/repositories/contest"
	entityRepo "github.com/KirkDiggler/contested/internal/repositories/entity"
	"github.com/KirkDiggler/contested/internal/services/handoff"
	"github.com/sirupsen/logrus"
)

// Config holds configuration for the contest service
type Config struct {
	// AllowLuckyUnlucky enables lucky/unlucky overrides for every roll
	AllowLuckyUnlucky bool

	// MaxWriteRetries bounds re-reads after a version conflict; defaults to 3
	MaxWriteRetries int

	// Repository dependencies
	ContestRepo contestRepo.Repository
	EntityRepo  entityRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Publisher receives resolved contests; optional
	Publisher handoff.Publisher

	// Listeners are notified after every mutation; optional
	Listeners []Listener

	// Optional ambient dependencies
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
}

// ParticipantSpec names one side when opening a contest
type ParticipantSpec struct {
	// EntityID is the character or monster on this side
	EntityID string `validate:"required"`

	// Label is what is being tested; when it names one of the entity's
	// skills and TargetNumber is nil, the skill value becomes the target
	Label string

	// TargetNumber presets the number rolled against
	TargetNumber *int

	// Modifier is a situational adjustment to the target
	Modifier int

	// DamageFormula is the attacker's damage reference
	DamageFormula string
}

// CreateContestInput contains parameters for opening a contest
type CreateContestInput struct {
	// ChannelID is where the contest is presented
	ChannelID string

	Mode models.ContestMode `validate:"required,oneof=attack spell area skill"`

	Attacker ParticipantSpec
	Defender ParticipantSpec

	// Identity is the user opening the contest
	Identity *models.Identity
}

// CreateContestOutput contains the result of opening a contest
type CreateContestOutput struct {
	Contest *models.Contest
}

// SubmitRollInput contains parameters for rolling one side
type SubmitRollInput struct {
	ContestID string
	Side      models.Side
	Identity  *models.Identity

	// Choice names the skill to roll against when the side has no target yet
	Choice string

	// Modifier adds to the side's situational modifier
	Modifier int

	// PrecisionLocation replaces the hit location roll for precision strikes
	PrecisionLocation *models.HitLocation
}

// SubmissionResult is shared by the roll and decline outputs
type SubmissionResult struct {
	// Contest is the record after the call
	Contest *models.Contest

	// Applied is true when this call stored a result
	Applied bool

	// Skipped holds ErrAlreadySubmitted or ErrAlreadyResolved when the call
	// was absorbed as a no-op
	Skipped error

	// Resolved is true when this call completed the contest
	Resolved bool

	// Resolution is the handoff for the effect pipeline once resolved
	Resolution *models.Resolution
}

// SubmitRollOutput contains the result of a roll submission
type SubmitRollOutput struct {
	SubmissionResult
}

// DeclineDefenseInput contains parameters for declining to defend
type DeclineDefenseInput struct {
	ContestID string
	Identity  *models.Identity
}

// DeclineDefenseOutput contains the result of declining to defend
type DeclineDefenseOutput struct {
	SubmissionResult
}

// GetContestInput contains parameters for retrieving a contest
type GetContestInput struct {
	ContestID string
}

// GetContestOutput contains the retrieved contest
type GetContestOutput struct {
	Contest *models.Contest
}

// ListPendingContestsInput contains parameters for listing pending contests
type ListPendingContestsInput struct {
	ChannelID string
}

// ListPendingContestsOutput contains the pending contests, oldest first
type ListPendingContestsOutput struct {
	Contests []*models.Contest
}

// AttachMessageInput contains parameters for recording the presentation handle
type AttachMessageInput struct {
	ContestID string
	MessageID string
}

// AttachMessageOutput contains the updated contest
type AttachMessageOutput struct {
	Contest *models.Contest
}

// DiscardContestInput contains parameters for abandoning a contest
type DiscardContestInput struct {
	ContestID string
	Identity  *models.Identity
}

// DiscardContestOutput contains the result of abandoning a contest
type DiscardContestOutput struct {
	Discarded bool
}
