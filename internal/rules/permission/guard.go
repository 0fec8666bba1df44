package permission

import "github.com/KirkDiggler/contested/internal/models"

// Controlled is anything that can answer who controls it
type Controlled interface {
	IsControlledBy(userID string) bool
}

// Guard decides who may act for a contest side. It holds no state; callers
// pass a freshly loaded entity on every check.
type Guard struct{}

// New creates a guard
func New() *Guard {
	return &Guard{}
}

// CanSubmit reports whether identity may submit for side
func (g *Guard) CanSubmit(identity *models.Identity, side Controlled) bool {
	if identity == nil {
		return false
	}
	if identity.IsGameMaster {
		return true
	}
	if side == nil {
		return false
	}
	return side.IsControlledBy(identity.UserID)
}
