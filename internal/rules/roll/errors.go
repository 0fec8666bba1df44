package roll

// RollError is a custom error type for roll evaluation errors
type RollError string

// Error implements the error interface
func (e RollError) Error() string {
	return string(e)
}

const (
	ErrNilConfig     RollError = "config cannot be nil"
	ErrNilDiceRoller RollError = "dice roller cannot be nil"
	ErrNilInput      RollError = "roll input cannot be nil"
	ErrInvalidDraw   RollError = "percentile draw must be between 1 and 100"
)
