package models

// OutcomeReason records which resolution branch fired
type OutcomeReason string

const (
	OutcomeReasonAttackerSucceeded     OutcomeReason = "attacker_succeeded"
	OutcomeReasonDefenderSucceeded     OutcomeReason = "defender_succeeded"
	OutcomeReasonHigherDegreeOfSuccess OutcomeReason = "higher_degree_of_success"
	OutcomeReasonTieAttackerAdvantage  OutcomeReason = "tie_attacker_advantage"
	OutcomeReasonLowerDegreeOfFailure  OutcomeReason = "lower_degree_of_failure"
	OutcomeReasonMutualFailureDraw     OutcomeReason = "mutual_failure_draw"
	OutcomeReasonDefenderDeclined      OutcomeReason = "defender_declined"
	OutcomeReasonAttackMissed          OutcomeReason = "attack_missed"
)

// Outcome is the final result of a contest
type Outcome struct {
	// Winner is empty on a draw
	Winner Side `json:"winner_side,omitempty"`

	Reason OutcomeReason `json:"reason"`
}

// IsDraw reports whether neither side won
func (o *Outcome) IsDraw() bool {
	return o != nil && o.Winner == ""
}
