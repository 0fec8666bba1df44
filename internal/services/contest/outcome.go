package contest

import "github.com/KirkDiggler/contested/internal/models"

// ComputeOutcome decides the winner once both sides hold a result. It reads
// only the two results and the decline flag.
func ComputeOutcome(attacker, defender *models.Participant) *models.Outcome {
	if !attacker.HasResult() || !defender.HasResult() {
		return nil
	}

	a := attacker.Result
	d := defender.Result

	if defender.DeclinedDefense {
		if a.IsSuccess {
			return &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonDefenderDeclined}
		}
		return &models.Outcome{Reason: models.OutcomeReasonAttackMissed}
	}

	switch {
	case a.IsSuccess && !d.IsSuccess:
		return &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonAttackerSucceeded}
	case !a.IsSuccess && d.IsSuccess:
		return &models.Outcome{Winner: models.SideDefender, Reason: models.OutcomeReasonDefenderSucceeded}
	case a.IsSuccess && d.IsSuccess:
		switch {
		case a.Degree > d.Degree:
			return &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonHigherDegreeOfSuccess}
		case d.Degree > a.Degree:
			return &models.Outcome{Winner: models.SideDefender, Reason: models.OutcomeReasonHigherDegreeOfSuccess}
		}
		return &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonTieAttackerAdvantage}
	}

	// Both failed
	switch {
	case a.Degree < d.Degree:
		return &models.Outcome{Winner: models.SideAttacker, Reason: models.OutcomeReasonLowerDegreeOfFailure}
	case d.Degree < a.Degree:
		return &models.Outcome{Winner: models.SideDefender, Reason: models.OutcomeReasonLowerDegreeOfFailure}
	}
	return &models.Outcome{Reason: models.OutcomeReasonMutualFailureDraw}
}
