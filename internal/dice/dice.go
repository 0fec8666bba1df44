package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/contested/internal/dice Roller

// Common die sizes used by the rules engine
const (
	D10  = 10
	D100 = 100
)

// Roller provides dice rolling functionality
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// randomRoller is safe for concurrent use; contests submit from many sessions.
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *randomRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *randomRoller) Roll(sides int) int {
	if sides < 1 {
		sides = D100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.random.Intn(sides) + 1
}
