package world

import (
	"fmt"
	"slices"
)

// State is a snapshot of the arm position, the held object and the stacks.
// Stacks are ordered left to right, objects within a stack bottom to top.
type State struct {
	Arm     int               `json:"arm" yaml:"arm"`
	Holding string            `json:"holding,omitempty" yaml:"holding,omitempty"`
	Stacks  [][]string        `json:"stacks" yaml:"stacks"`
	Objects map[string]Object `json:"objects" yaml:"objects"`
}

// Clone returns a copy whose stacks can be mutated without affecting s.
// The object descriptors are shared; they are never mutated.
func (s State) Clone() State {
	stacks := make([][]string, len(s.Stacks))
	for i, stack := range s.Stacks {
		stacks[i] = slices.Clone(stack)
	}
	return State{
		Arm:     s.Arm,
		Holding: s.Holding,
		Stacks:  stacks,
		Objects: s.Objects,
	}
}

// Position locates an object as (column, height). The floor and unplaced or
// held objects have no position.
func (s State) Position(id string) (column, height int, ok bool) {
	for c, stack := range s.Stacks {
		if h := slices.Index(stack, id); h >= 0 {
			return c, h, true
		}
	}
	return 0, 0, false
}

// Above returns the number of objects stacked on top of id, or 0 if id is
// not in a stack.
func (s State) Above(id string) int {
	c, h, ok := s.Position(id)
	if !ok {
		return 0
	}
	return len(s.Stacks[c]) - h - 1
}

// Top returns the descriptor of the topmost object in column c, or Floor
// when the column is empty.
func (s State) Top(c int) Object {
	stack := s.Stacks[c]
	if len(stack) == 0 {
		return Floor
	}
	return s.Objects[stack[len(stack)-1]]
}

// Object returns the descriptor for id. The floor id resolves to Floor.
func (s State) Object(id string) (Object, bool) {
	if id == FloorID {
		return Floor, true
	}
	o, ok := s.Objects[id]
	return o, ok
}

// Validate checks the structural and physical invariants of the world.
func (s State) Validate() error {
	if len(s.Stacks) == 0 {
		return fmt.Errorf("%w: no stacks", ErrInvalidWorld)
	}
	if s.Arm < 0 || s.Arm >= len(s.Stacks) {
		return fmt.Errorf("%w: arm %d outside 0..%d", ErrInvalidWorld, s.Arm, len(s.Stacks)-1)
	}

	seen := make(map[string]bool)
	check := func(id string) error {
		if id == FloorID {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidWorld, FloorID)
		}
		if seen[id] {
			return fmt.Errorf("%w: %q placed more than once", ErrInvalidWorld, id)
		}
		seen[id] = true
		o, ok := s.Objects[id]
		if !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidWorld, ErrUnknownObject, id)
		}
		if !o.Form.IsValid() || o.IsFloor() {
			return fmt.Errorf("%w: %q has invalid form %q", ErrInvalidWorld, id, o.Form)
		}
		if !o.Size.IsValid() {
			return fmt.Errorf("%w: %q has invalid size %q", ErrInvalidWorld, id, o.Size)
		}
		return nil
	}

	if s.Holding != "" {
		if err := check(s.Holding); err != nil {
			return err
		}
	}
	for c, stack := range s.Stacks {
		below := Floor
		for _, id := range stack {
			if err := check(id); err != nil {
				return err
			}
			o := s.Objects[id]
			if !CanDrop(o, below) {
				return fmt.Errorf("%w: %s cannot rest on %s in stack %d",
					ErrInvalidWorld, Describe(o), Describe(below), c)
			}
			below = o
		}
	}
	return nil
}
