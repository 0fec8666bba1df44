package hitlocation

import (
	"github.com/KirkDiggler/contested/internal/dice"
	"github.com/KirkDiggler/contested/internal/models"
)

// HitLocationError is a custom error type for hit location errors
type HitLocationError string

// Error implements the error interface
func (e HitLocationError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             HitLocationError = "config cannot be nil"
	ErrNilDiceRoller         HitLocationError = "dice roller cannot be nil"
	ErrMissingManualLocation HitLocationError = "manual hit location requires a chosen location"
	ErrInvalidLocation       HitLocationError = "unknown hit location"
	ErrInvalidMode           HitLocationError = "unknown hit location mode"
)

// Mode selects how the location is determined
type Mode string

const (
	// ModeRoll rolls a d10 on the location table
	ModeRoll Mode = "roll"

	// ModeManual echoes a location chosen by a precision effect
	ModeManual Mode = "manual"
)

// Input describes a hit location request
type Input struct {
	Mode   Mode
	Manual *models.HitLocation
}

// Config holds the resolver's dependencies
type Config struct {
	DiceRoller dice.Roller
}

// Resolver determines where an attack lands
type Resolver struct {
	roller dice.Roller
}

// New creates a hit location resolver
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &Resolver{roller: cfg.DiceRoller}, nil
}

// Resolve returns the hit location for the input
func (r *Resolver) Resolve(input *Input) (models.HitLocation, error) {
	if input == nil {
		input = &Input{Mode: ModeRoll}
	}

	switch input.Mode {
	case ModeRoll, "":
		return FromRoll(r.roller.Roll(dice.D10)), nil
	case ModeManual:
		if input.Manual == nil || *input.Manual == "" {
			return "", ErrMissingManualLocation
		}
		if !input.Manual.IsValid() {
			return "", ErrInvalidLocation
		}
		return *input.Manual, nil
	}

	return "", ErrInvalidMode
}

// ForArea returns the fixed location for area effects
func ForArea() models.HitLocation {
	return models.HitLocationBody
}

// FromRoll maps a d10 to the location table. Values outside 1-10 land on the body.
func FromRoll(v int) models.HitLocation {
	switch v {
	case 6:
		return models.HitLocationRightLeg
	case 7:
		return models.HitLocationLeftLeg
	case 8:
		return models.HitLocationRightArm
	case 9:
		return models.HitLocationLeftArm
	case 10:
		return models.HitLocationHead
	}
	return models.HitLocationBody
}
