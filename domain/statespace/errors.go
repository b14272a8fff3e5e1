package statespace

import "errors"

// ErrIllegalAction indicates a replayed action is not legal in the state it is applied to.
var ErrIllegalAction = errors.New("illegal action")
