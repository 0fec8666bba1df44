package models

import (
	"time"
)

// ContestStatus represents the lifecycle state of a contest
type ContestStatus string

const (
	// ContestStatusPending indicates at least one side has not rolled yet
	ContestStatusPending ContestStatus = "pending"

	// ContestStatusResolved indicates the outcome is final and the record is frozen
	ContestStatusResolved ContestStatus = "resolved"
)

// IsPending returns true while sides may still submit
func (s ContestStatus) IsPending() bool {
	return s == ContestStatusPending
}

// IsResolved returns true once the outcome has been computed
func (s ContestStatus) IsResolved() bool {
	return s == ContestStatusResolved
}

// ContestMode distinguishes contest flavors. The protocol is identical
// across modes; only labels and hit location handling differ.
type ContestMode string

const (
	// ContestModeAttack is a weapon attack against a defense
	ContestModeAttack ContestMode = "attack"

	// ContestModeSpell is a targeted spell attack against a defense
	ContestModeSpell ContestMode = "spell"

	// ContestModeArea is an area spell; every hit lands on the body
	ContestModeArea ContestMode = "area"

	// ContestModeSkill is a skill-opposed test with no hit location
	ContestModeSkill ContestMode = "skill"
)

// IsValid reports whether the mode is one of the known flavors
func (m ContestMode) IsValid() bool {
	switch m {
	case ContestModeAttack, ContestModeSpell, ContestModeArea, ContestModeSkill:
		return true
	}
	return false
}

// RollsHitLocation reports whether the attacker's submission rolls a hit location
func (m ContestMode) RollsHitLocation() bool {
	return m == ContestModeAttack || m == ContestModeSpell
}

// IsArea reports whether the contest is an area effect
func (m ContestMode) IsArea() bool {
	return m == ContestModeArea
}

// Side names one half of a contest
type Side string

const (
	SideAttacker Side = "attacker"
	SideDefender Side = "defender"
)

// IsValid reports whether s names a contest side
func (s Side) IsValid() bool {
	return s == SideAttacker || s == SideDefender
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideAttacker {
		return SideDefender
	}
	return SideAttacker
}

// Contest is the shared, versioned record of one opposed roll. It is written
// back as a full replacement on every mutation.
type Contest struct {
	// ID is the unique identifier for the contest
	ID string `json:"id"`

	// ChannelID is the channel the contest was posted to
	ChannelID string `json:"channel_id,omitempty"`

	// MessageID is the presentation handle (the chat message showing the contest)
	MessageID string `json:"message_id,omitempty"`

	// Mode selects labels and hit location behavior
	Mode ContestMode `json:"mode"`

	// Status is the current state of the contest
	Status ContestStatus `json:"status"`

	Attacker *Participant `json:"attacker"`
	Defender *Participant `json:"defender"`

	// HitLocation is set by the attacker's submission in attack, spell and area modes
	HitLocation *HitLocation `json:"hit_location,omitempty"`

	// Outcome is present only once Status is resolved
	Outcome *Outcome `json:"outcome,omitempty"`

	// Version increments on every persisted write
	Version int64 `json:"version"`

	// CreatedBy is the user who opened the contest
	CreatedBy string `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant returns the participant on the given side
func (c *Contest) Participant(side Side) *Participant {
	switch side {
	case SideAttacker:
		return c.Attacker
	case SideDefender:
		return c.Defender
	}
	return nil
}

// BothRolled reports whether each side holds a result
func (c *Contest) BothRolled() bool {
	return c.Attacker != nil && c.Attacker.HasResult() &&
		c.Defender != nil && c.Defender.HasResult()
}

// Clone returns a deep copy so callers can mutate freely without touching
// the stored record.
func (c *Contest) Clone() *Contest {
	if c == nil {
		return nil
	}

	out := *c
	out.Attacker = c.Attacker.Clone()
	out.Defender = c.Defender.Clone()
	if c.HitLocation != nil {
		loc := *c.HitLocation
		out.HitLocation = &loc
	}
	if c.Outcome != nil {
		outcome := *c.Outcome
		out.Outcome = &outcome
	}
	return &out
}
