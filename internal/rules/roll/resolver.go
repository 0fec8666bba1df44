// Package roll evaluates percentile rolls against a target number.
//
// A roll succeeds when the d100 draw is at or under the target. The degree
// of success grows with the tens digit of the draw, and targets above 100
// bank their excess as bonus degrees. The degree of failure grows with how
// far the draw overshot the target. Lucky and unlucky numbers, when allowed,
// override the numeric comparison entirely.
package roll

import (
	"fmt"

	"github.com/KirkDiggler/contested/internal/dice"
	"github.com/KirkDiggler/contested/internal/models"
)

// Luck is the subset of an entity the resolver reads
type Luck interface {
	LuckyNumbers() []int
	UnluckyNumbers() []int
}

// Input describes a single roll
type Input struct {
	// Target is the effective target number
	Target int

	// AllowLuckyUnlucky enables the lucky/unlucky overrides
	AllowLuckyUnlucky bool
}

// Config holds the resolver's dependencies
type Config struct {
	DiceRoller dice.Roller
}

// Resolver draws and evaluates percentile rolls
type Resolver struct {
	roller dice.Roller
}

// New creates a resolver
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &Resolver{roller: cfg.DiceRoller}, nil
}

// Resolve draws one d100 and evaluates it for the entity
func (r *Resolver) Resolve(entity Luck, input *Input) (*models.RollOutcome, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	draw := r.roller.Roll(dice.D100)
	if draw < 1 || draw > 100 {
		return nil, ErrInvalidDraw
	}

	var lucky, unlucky []int
	if entity != nil && input.AllowLuckyUnlucky {
		lucky = entity.LuckyNumbers()
		unlucky = entity.UnluckyNumbers()
	}

	return Evaluate(draw, input.Target, lucky, unlucky), nil
}

// Evaluate is the pure roll evaluation. Pass nil luck sets to disable the
// overrides.
func Evaluate(draw, target int, lucky, unlucky []int) *models.RollOutcome {
	out := &models.RollOutcome{
		RollTotal: draw,
		Target:    target,
	}

	switch {
	case contains(lucky, draw):
		out.IsSuccess = true
		out.IsCriticalSuccess = true
	case contains(unlucky, draw):
		out.IsSuccess = false
		out.IsCriticalFailure = true
	default:
		out.IsSuccess = draw <= target
	}

	if out.IsSuccess {
		out.Degree = SuccessDegree(draw, target)
	} else {
		out.Degree = FailureDegree(draw, target)
	}
	out.Textual = textual(out)

	return out
}

// SuccessDegree returns the degree of success for a successful draw
func SuccessDegree(draw, target int) int {
	degree := max(1, draw/10)
	if target > 100 {
		degree += target / 10
	}
	return degree
}

// FailureDegree returns the degree of failure for a failed draw
func FailureDegree(draw, target int) int {
	excess := max(0, draw-target)
	return max(1, 1+excess/10)
}

func textual(out *models.RollOutcome) string {
	var text string
	if out.IsSuccess {
		text = fmt.Sprintf("%d DoS", out.Degree)
	} else {
		text = fmt.Sprintf("%d DoF", out.Degree)
	}

	switch {
	case out.IsCriticalSuccess:
		text += " (Lucky)"
	case out.IsCriticalFailure:
		text += " (Unlucky)"
	}
	return text
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
