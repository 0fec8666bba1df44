package contest

import "errors"

// ContestError is a custom error type for contest-related errors
type ContestError string

// Error implements the error interface
func (e ContestError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnresolvedParticipant ContestError = "contest participant could not be found"
	ErrPermissionDenied      ContestError = "you do not control this side of the contest"
	ErrAlreadySubmitted      ContestError = "this side has already rolled"
	ErrAlreadyResolved       ContestError = "contest is already resolved"
	ErrMissingDefenseChoice  ContestError = "choose what to defend with before rolling"
	ErrMissingTargetNumber   ContestError = "choose what to roll against before rolling"
	ErrUnknownChoice         ContestError = "entity has no such skill"
	ErrContestNotFound       ContestError = "contest not found"
	ErrInvalidSide           ContestError = "side must be attacker or defender"
	ErrInvalidInput          ContestError = "invalid contest input"
	ErrMissingIdentity       ContestError = "identity is required"
	ErrNotDiscardable        ContestError = "only pending contests can be discarded by their creator or a game master"
	ErrWriteConflict         ContestError = "contest kept changing while saving, try again"
	ErrNilConfig             ContestError = "config cannot be nil"
	ErrNilContestRepo        ContestError = "contest repository cannot be nil"
	ErrNilEntityRepo         ContestError = "entity repository cannot be nil"
	ErrNilDiceRoller         ContestError = "dice roller cannot be nil"
	ErrNilClock              ContestError = "clock cannot be nil"
	ErrNilUUIDGenerator      ContestError = "UUID generator cannot be nil"
)

// reasonLabel names an error for metrics and logs
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, ErrUnresolvedParticipant):
		return "unresolved_participant"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrAlreadySubmitted):
		return "already_submitted"
	case errors.Is(err, ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, ErrMissingDefenseChoice):
		return "missing_defense_choice"
	case errors.Is(err, ErrMissingTargetNumber):
		return "missing_target_number"
	case errors.Is(err, ErrUnknownChoice):
		return "unknown_choice"
	case errors.Is(err, ErrWriteConflict):
		return "write_conflict"
	}
	return "other"
}
