package models

// RollOutcome is the evaluated result of one percentile roll
type RollOutcome struct {
	// RollTotal is the d100 value in [1, 100]
	RollTotal int `json:"roll_total"`

	// Target is the number the roll was evaluated against
	Target int `json:"target"`

	IsSuccess bool `json:"is_success"`

	// IsCriticalSuccess is set when the roll hit a lucky number
	IsCriticalSuccess bool `json:"is_critical_success,omitempty"`

	// IsCriticalFailure is set when the roll hit an unlucky number
	IsCriticalFailure bool `json:"is_critical_failure,omitempty"`

	// Degree is the magnitude of success or failure, always >= 1
	Degree int `json:"degree"`

	// Textual is a human rendering such as "3 DoS"
	Textual string `json:"textual"`
}
