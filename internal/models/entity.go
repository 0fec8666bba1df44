package models

// Luck number caps per entity
const (
	MaxLuckyNumbers   = 10
	MaxUnluckyNumbers = 6
)

// Entity is the narrow view of a character or monster the engine needs.
// Host adapters translate their richer actors into this shape; Skills hold
// already-computed target numbers with penalties applied.
type Entity struct {
	// ID is the stable identity of the entity
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// OwnerIDs are the users allowed to roll for this entity
	OwnerIDs []string `json:"owner_ids,omitempty"`

	// Skills maps a skill, characteristic or combat style to its target number
	Skills map[string]int `json:"skills,omitempty"`

	Lucky   []int `json:"lucky,omitempty"`
	Unlucky []int `json:"unlucky,omitempty"`
}

// IsControlledBy reports whether userID owns the entity
func (e *Entity) IsControlledBy(userID string) bool {
	if e == nil || userID == "" {
		return false
	}
	for _, id := range e.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LuckyNumbers returns at most MaxLuckyNumbers configured lucky values
func (e *Entity) LuckyNumbers() []int {
	if e == nil {
		return nil
	}
	return capNumbers(e.Lucky, MaxLuckyNumbers)
}

// UnluckyNumbers returns at most MaxUnluckyNumbers configured unlucky values
func (e *Entity) UnluckyNumbers() []int {
	if e == nil {
		return nil
	}
	return capNumbers(e.Unlucky, MaxUnluckyNumbers)
}

// Skill looks up a target number by name
func (e *Entity) Skill(name string) (int, bool) {
	if e == nil || e.Skills == nil {
		return 0, false
	}
	v, ok := e.Skills[name]
	return v, ok
}

func capNumbers(values []int, max int) []int {
	out := make([]int, 0, max)
	for _, v := range values {
		if v < 1 || v > 100 {
			continue
		}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}
