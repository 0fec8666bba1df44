package models

import (
	"time"
)

// Participant is one side of a contest. Attacker and defender share the shape.
type Participant struct {
	// SideID references the controlled entity whose permissions and luck apply
	SideID string `json:"side_id"`

	// DisplayName is the entity's name as shown to players
	DisplayName string `json:"display_name"`

	// Label is what is being tested, e.g. a weapon or skill name
	Label string `json:"label,omitempty"`

	// TargetNumber is nil until chosen, e.g. a defender picking a defense
	TargetNumber *int `json:"target_number,omitempty"`

	// Modifier is a situational bonus or penalty applied on top of TargetNumber
	Modifier int `json:"modifier,omitempty"`

	// DamageFormula is the attacker's damage reference handed to the effect pipeline
	DamageFormula string `json:"damage_formula,omitempty"`

	// Result is write-once
	Result *RollOutcome `json:"result,omitempty"`

	// DeclinedDefense marks a defender that forwent rolling
	DeclinedDefense bool `json:"declined_defense,omitempty"`

	// SubmittedBy is the user whose submission produced Result
	SubmittedBy string `json:"submitted_by,omitempty"`

	// SubmittedAt is when Result was recorded
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// HasResult reports whether the side has already submitted
func (p *Participant) HasResult() bool {
	return p != nil && p.Result != nil
}

// EffectiveTarget returns the number rolled against, or false when no target is set
func (p *Participant) EffectiveTarget() (int, bool) {
	if p == nil || p.TargetNumber == nil {
		return 0, false
	}
	return *p.TargetNumber + p.Modifier, true
}

// Clone returns a deep copy of the participant
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}

	out := *p
	if p.TargetNumber != nil {
		target := *p.TargetNumber
		out.TargetNumber = &target
	}
	if p.Result != nil {
		result := *p.Result
		out.Result = &result
	}
	if p.SubmittedAt != nil {
		at := *p.SubmittedAt
		out.SubmittedAt = &at
	}
	return &out
}
