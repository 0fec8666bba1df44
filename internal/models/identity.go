package models

// Identity is the user attempting an action
type Identity struct {
	// UserID is the host platform's user id
	UserID string

	// Name is the display name of the user
	Name string

	// IsGameMaster grants authority over every side
	IsGameMaster bool
}
