package world

// Action is a primitive arm action. Every action costs one unit.
type Action string

// Primitive actions.
const (
	MoveLeft  Action = "l"
	MoveRight Action = "r"
	PickUp    Action = "p"
	PutDown   Action = "d"
)

// IsValid returns true if the action is one of the primitives.
func (a Action) IsValid() bool {
	switch a {
	case MoveLeft, MoveRight, PickUp, PutDown:
		return true
	default:
		return false
	}
}

// String returns the single-character label.
func (a Action) String() string {
	return string(a)
}

// AllActions returns the primitives in successor order.
func AllActions() []Action {
	return []Action{MoveLeft, MoveRight, PickUp, PutDown}
}
