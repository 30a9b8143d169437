package core

// Intent is a discrete player command. Hosts translate their input events
// into intents; key repeat and held-key state never reach the simulation.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentSoftDrop
	IntentHardDrop
	IntentRotateCW
	IntentHold
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentSoftDrop:
		return "SoftDrop"
	case IntentHardDrop:
		return "HardDrop"
	case IntentRotateCW:
		return "RotateCW"
	case IntentHold:
		return "Hold"
	default:
		return "Unknown"
	}
}

// Apply dispatches an intent to the matching mutator.
// It reports whether the intent changed the simulation.
func (s *Sim) Apply(i Intent) bool {
	switch i {
	case IntentMoveLeft:
		return s.MoveLeft()
	case IntentMoveRight:
		return s.MoveRight()
	case IntentSoftDrop:
		return s.SoftDrop()
	case IntentHardDrop:
		return s.HardDrop()
	case IntentRotateCW:
		return s.RotateCW()
	case IntentHold:
		return s.Hold()
	default:
		return false
	}
}
