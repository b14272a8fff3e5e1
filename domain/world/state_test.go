package world

import (
	"errors"
	"testing"
)

func TestState_Clone(t *testing.T) {
	t.Parallel()

	s := Examples()["small"]
	c := s.Clone()
	c.Stacks[0] = append(c.Stacks[0], "x")
	c.Stacks[1][0] = "y"
	c.Arm = 3

	if len(s.Stacks[0]) != 1 || s.Stacks[1][0] != "g" || s.Arm != 0 {
		t.Errorf("Clone() mutation leaked into original: %+v", s)
	}
}

func TestState_Position(t *testing.T) {
	t.Parallel()

	s := Examples()["small"]

	tests := []struct {
		id             string
		column, height int
		ok             bool
	}{
		{"e", 0, 0, true},
		{"l", 1, 1, true},
		{"f", 3, 2, true},
		{"a", 0, 0, false},
		{FloorID, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			c, h, ok := s.Position(tt.id)
			if ok != tt.ok || (ok && (c != tt.column || h != tt.height)) {
				t.Errorf("Position(%s) = (%d, %d, %v), want (%d, %d, %v)",
					tt.id, c, h, ok, tt.column, tt.height, tt.ok)
			}
		})
	}
}

func TestState_Above(t *testing.T) {
	t.Parallel()

	s := Examples()["small"]
	if got := s.Above("k"); got != 2 {
		t.Errorf("Above(k) = %d, want 2", got)
	}
	if got := s.Above("f"); got != 0 {
		t.Errorf("Above(f) = %d, want 0", got)
	}
	if got := s.Above("a"); got != 0 {
		t.Errorf("Above(a) = %d, want 0", got)
	}
}

func TestState_Top(t *testing.T) {
	t.Parallel()

	s := Examples()["small"]
	if got := s.Top(2); !got.IsFloor() {
		t.Errorf("Top(2) = %+v, want floor", got)
	}
	if got := s.Top(3); got != s.Objects["f"] {
		t.Errorf("Top(3) = %+v, want %+v", got, s.Objects["f"])
	}
}

func TestState_Validate(t *testing.T) {
	t.Parallel()

	ball := Object{Form: FormBall, Size: SizeSmall}
	box := Object{Form: FormBox, Size: SizeSmall}

	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{"valid", State{Stacks: [][]string{{"a"}, {}}, Objects: map[string]Object{"a": ball}}, false},
		{"held", State{Holding: "a", Stacks: [][]string{{}}, Objects: map[string]Object{"a": ball}}, false},
		{"no stacks", State{Objects: map[string]Object{}}, true},
		{"arm out of range", State{Arm: 2, Stacks: [][]string{{}, {}}}, true},
		{"negative arm", State{Arm: -1, Stacks: [][]string{{}}}, true},
		{"duplicate", State{Stacks: [][]string{{"a"}, {"a"}}, Objects: map[string]Object{"a": ball}}, true},
		{"held and placed", State{Holding: "a", Stacks: [][]string{{"a"}}, Objects: map[string]Object{"a": ball}}, true},
		{"undescribed", State{Stacks: [][]string{{"z"}}, Objects: map[string]Object{}}, true},
		{"reserved id", State{Stacks: [][]string{{FloorID}}, Objects: map[string]Object{FloorID: ball}}, true},
		{"bad size", State{Stacks: [][]string{{"a"}}, Objects: map[string]Object{"a": {Form: FormBall}}}, true},
		{"illegal stacking", State{Stacks: [][]string{{"a", "b"}}, Objects: map[string]Object{"a": ball, "b": box}}, true},
		{"legal stacking", State{Stacks: [][]string{{"b", "a"}}, Objects: map[string]Object{"a": ball, "b": box}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.state.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorld) {
				t.Errorf("Validate() error = %v, want ErrInvalidWorld", err)
			}
		})
	}
}

func TestExamples_Valid(t *testing.T) {
	t.Parallel()

	for _, name := range ExampleNames() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if err := Examples()[name].Validate(); err != nil {
				t.Errorf("Examples()[%s].Validate() error = %v", name, err)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	if got := Describe(Object{Form: FormBall, Size: SizeLarge, Color: "white"}); got != "the large white ball" {
		t.Errorf("Describe() = %q, want %q", got, "the large white ball")
	}
	if got := Describe(Floor); got != "the floor" {
		t.Errorf("Describe(Floor) = %q, want %q", got, "the floor")
	}
}
