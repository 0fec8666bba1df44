package models

// Resolution is handed to the damage and healing pipeline once a contest resolves
type Resolution struct {
	ContestID string      `json:"contest_id"`
	ChannelID string      `json:"channel_id,omitempty"`
	Mode      ContestMode `json:"mode"`

	// Winner and Loser are empty on a draw
	Winner Side `json:"winner_side,omitempty"`
	Loser  Side `json:"loser_side,omitempty"`

	// WinnerEntityID and LoserEntityID reference the sides' entities
	WinnerEntityID string `json:"winner_entity_id,omitempty"`
	LoserEntityID  string `json:"loser_entity_id,omitempty"`

	// WinnerDegree scales follow-on effects
	WinnerDegree int `json:"winner_degree,omitempty"`

	Outcome Outcome `json:"outcome"`

	HitLocation *HitLocation `json:"hit_location,omitempty"`

	AttackerDamageFormula string `json:"attacker_damage_formula,omitempty"`
}

// NewResolution builds the handoff for a resolved contest, or nil when the
// contest has no outcome yet.
func NewResolution(c *Contest) *Resolution {
	if c == nil || c.Outcome == nil {
		return nil
	}

	res := &Resolution{
		ContestID: c.ID,
		ChannelID: c.ChannelID,
		Mode:      c.Mode,
		Outcome:   *c.Outcome,
	}
	if c.Attacker != nil {
		res.AttackerDamageFormula = c.Attacker.DamageFormula
	}
	if c.HitLocation != nil {
		loc := *c.HitLocation
		res.HitLocation = &loc
	}

	if c.Outcome.Winner.IsValid() {
		winner := c.Participant(c.Outcome.Winner)
		loser := c.Participant(c.Outcome.Winner.Opponent())
		res.Winner = c.Outcome.Winner
		res.Loser = c.Outcome.Winner.Opponent()
		if winner != nil {
			res.WinnerEntityID = winner.SideID
			if winner.Result != nil {
				res.WinnerDegree = winner.Result.Degree
			}
		}
		if loser != nil {
			res.LoserEntityID = loser.SideID
		}
	}

	return res
}
