package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/KirkDiggler/contested/internal/services/contest"
)

// service implements the Service interface
type service struct {
	mu sync.Mutex

	// Random number generator for selecting flavor lines
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetContestSummary renders a contest from its record alone
func (s *service) GetContestSummary(ctx context.Context, input *GetContestSummaryInput) (*GetContestSummaryOutput, error) {
	if input == nil || input.Contest == nil {
		return nil, errors.New("contest cannot be nil")
	}
	c := input.Contest

	attackerRole, defenderRole := roles(c.Mode)
	out := &GetContestSummaryOutput{
		Title:    title(c),
		Attacker: sideLine(models.SideAttacker, attackerRole, c.Attacker),
		Defender: sideLine(models.SideDefender, defenderRole, c.Defender),
		Resolved: c.Status.IsResolved(),
	}

	if c.HitLocation != nil {
		out.HitLocation = c.HitLocation.Display()
	}

	if c.Outcome != nil {
		out.OutcomeText = outcomeText(c)
		out.Draw = c.Outcome.IsDraw()
		out.Flavor = s.flavor(c.Outcome)
	}

	return out, nil
}

// GetSubmissionMessage returns the user-facing reply to a roll or decline
func (s *service) GetSubmissionMessage(ctx context.Context, input *GetSubmissionMessageInput) (*GetSubmissionMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Err == nil {
		if input.Resolved {
			return &GetSubmissionMessageOutput{Message: "Rolled. The contest is resolved!", Tone: ToneCelebration}, nil
		}
		return &GetSubmissionMessageOutput{Message: "Rolled. Waiting on the other side.", Tone: ToneNeutral}, nil
	}

	var message string
	switch {
	case errors.Is(input.Err, contest.ErrPermissionDenied):
		message = "Only the owner of that side or a game master can roll for it."
	case errors.Is(input.Err, contest.ErrAlreadySubmitted):
		message = fmt.Sprintf("The %s has already rolled.", strings.ToLower(string(input.Side)))
	case errors.Is(input.Err, contest.ErrAlreadyResolved):
		message = "This contest is already resolved."
	case errors.Is(input.Err, contest.ErrMissingDefenseChoice):
		message = "Pick a defense from the menu first."
	case errors.Is(input.Err, contest.ErrMissingTargetNumber):
		message = "Pick what to roll against first."
	case errors.Is(input.Err, contest.ErrUnknownChoice):
		message = "That skill is not on the character sheet."
	case errors.Is(input.Err, contest.ErrUnresolvedParticipant):
		message = "A participant in this contest could not be found."
	case errors.Is(input.Err, contest.ErrContestNotFound):
		message = "That contest no longer exists."
	case errors.Is(input.Err, contest.ErrNotDiscardable):
		message = "Only the creator or a game master can discard a pending contest."
	case errors.Is(input.Err, contest.ErrWriteConflict):
		message = "Too many people clicked at once. Try again."
	case errors.Is(input.Err, contest.ErrInvalidInput):
		message = "That contest request is incomplete."
	default:
		message = "Something went wrong with that roll. Try again in a moment."
	}

	return &GetSubmissionMessageOutput{
		Message: message,
		Tone:    ToneWarning,
	}, nil
}

func roles(mode models.ContestMode) (string, string) {
	switch mode {
	case models.ContestModeSpell, models.ContestModeArea:
		return "Caster", "Target"
	case models.ContestModeSkill:
		return "Challenger", "Opponent"
	}
	return "Attacker", "Defender"
}

func title(c *models.Contest) string {
	var kind string
	switch c.Mode {
	case models.ContestModeAttack:
		kind = "Attack"
	case models.ContestModeSpell:
		kind = "Spell"
	case models.ContestModeArea:
		kind = "Area Spell"
	default:
		kind = "Contest"
	}

	attacker, defender := "?", "?"
	if c.Attacker != nil {
		attacker = c.Attacker.DisplayName
	}
	if c.Defender != nil {
		defender = c.Defender.DisplayName
	}
	return fmt.Sprintf("%s: %s vs %s", kind, attacker, defender)
}

func sideLine(side models.Side, role string, p *models.Participant) SideLine {
	line := SideLine{Side: side, Heading: role}
	if p == nil {
		line.Text = "missing"
		return line
	}
	line.Heading = fmt.Sprintf("%s: %s", role, p.DisplayName)

	var against string
	if target, ok := p.EffectiveTarget(); ok {
		against = fmt.Sprintf("%s %d", labelOr(p.Label, "target"), target)
	}

	switch {
	case p.DeclinedDefense:
		line.Text = "No defense"
		line.Rolled = true
	case p.HasResult():
		line.Text = fmt.Sprintf("rolled %d, %s", p.Result.RollTotal, p.Result.Textual)
		if against != "" {
			line.Text = against + ": " + line.Text
		}
		line.Rolled = true
	case against != "":
		line.Text = fmt.Sprintf("%s: waiting to roll", against)
	case side == models.SideDefender:
		line.Text = "Choosing a defense"
	default:
		line.Text = "Choosing what to roll"
	}

	if p.DamageFormula != "" {
		line.Text += fmt.Sprintf(" (damage %s)", p.DamageFormula)
	}
	return line
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

func outcomeText(c *models.Contest) string {
	o := c.Outcome
	name := func(side models.Side) string {
		if p := c.Participant(side); p != nil {
			return p.DisplayName
		}
		return string(side)
	}
	degree := func(side models.Side) int {
		if p := c.Participant(side); p.HasResult() {
			return p.Result.Degree
		}
		return 0
	}

	switch o.Reason {
	case models.OutcomeReasonDefenderDeclined:
		return fmt.Sprintf("%s wins: %s did not defend", name(models.SideAttacker), name(models.SideDefender))
	case models.OutcomeReasonAttackMissed:
		return fmt.Sprintf("%s misses and no defense was needed", name(models.SideAttacker))
	case models.OutcomeReasonAttackerSucceeded, models.OutcomeReasonDefenderSucceeded:
		return fmt.Sprintf("%s wins: only %s succeeded", name(o.Winner), name(o.Winner))
	case models.OutcomeReasonHigherDegreeOfSuccess:
		return fmt.Sprintf("%s wins with more degrees of success (%d vs %d)",
			name(o.Winner), degree(o.Winner), degree(o.Winner.Opponent()))
	case models.OutcomeReasonTieAttackerAdvantage:
		return fmt.Sprintf("%s wins the tie as the attacker", name(models.SideAttacker))
	case models.OutcomeReasonLowerDegreeOfFailure:
		return fmt.Sprintf("%s wins by failing less badly (%d vs %d)",
			name(o.Winner), degree(o.Winner), degree(o.Winner.Opponent()))
	case models.OutcomeReasonMutualFailureDraw:
		return "Draw: both sides fail equally"
	}
	return string(o.Reason)
}

func (s *service) flavor(o *models.Outcome) string {
	var lines []string
	switch o.Reason {
	case models.OutcomeReasonDefenderDeclined:
		lines = []string{
			"Standing still is a choice.",
			"No parry, no dodge, no problem.",
		}
	case models.OutcomeReasonTieAttackerAdvantage:
		lines = []string{
			"Fortune favors the bold.",
			"Initiative matters.",
		}
	case models.OutcomeReasonMutualFailureDraw, models.OutcomeReasonAttackMissed:
		lines = []string{
			"Nobody writes songs about this one.",
			"Both sides catch their breath.",
			"Steel meets air.",
		}
	default:
		lines = []string{
			"The dice have spoken.",
			"A clean exchange.",
			"Someone is going to feel that tomorrow.",
			"The table holds its breath.",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return lines[s.rand.Intn(len(lines))]
}
