package messaging

import (
	"github.com/KirkDiggler/contested/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a plain informational tone
	ToneNeutral MessageTone = "neutral"

	// ToneWarning marks a rejected action
	ToneWarning MessageTone = "warning"

	// ToneCelebration marks a resolved contest
	ToneCelebration MessageTone = "celebration"
)

// GetContestSummaryInput contains the contest to render
type GetContestSummaryInput struct {
	Contest *models.Contest
}

// SideLine is one participant's line in a summary
type SideLine struct {
	Side models.Side

	// Heading is the mode-specific role and name, e.g. "Caster: Mira"
	Heading string

	// Text describes what the side rolls against and its result so far
	Text string

	Rolled bool
}

// GetContestSummaryOutput contains the rendered contest
type GetContestSummaryOutput struct {
	Title string

	Attacker SideLine
	Defender SideLine

	// HitLocation is empty until the attacker's roll sets one
	HitLocation string

	// OutcomeText is empty while the contest is pending
	OutcomeText string

	Resolved bool

	// Draw is true for a resolved contest with no winner
	Draw bool

	// Flavor is an optional one-liner for resolved contests
	Flavor string
}

// GetSubmissionMessageInput describes the result of a submission
type GetSubmissionMessageInput struct {
	// Err is the rejection or absorbed no-op; nil when the roll was stored
	Err error

	Side     models.Side
	Resolved bool
}

// GetSubmissionMessageOutput contains the reply text
type GetSubmissionMessageOutput struct {
	Message string
	Tone    MessageTone
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes flavor selection; zero seeds from the clock
	Seed int64
}
