package discord

import "strings"

// Component actions. Custom IDs are "<action>:<contest id>".
const (
	ActionAttackerRoll      = "attacker_roll"
	ActionAttackerChoice    = "attacker_choice"
	ActionDefenderRoll      = "defender_roll"
	ActionDefenderNoDefense = "defender_no_defense"
	ActionDefenderChoice    = "defender_choice"
	ActionDiscard           = "discard"
)

func customID(action, contestID string) string {
	return action + ":" + contestID
}

func parseCustomID(id string) (string, string, bool) {
	action, contestID, ok := strings.Cut(id, ":")
	if !ok || action == "" || contestID == "" {
		return "", "", false
	}
	return action, contestID, true
}
