package application

import (
	"errors"
	"slices"
	"testing"

	"github.com/felixgeelhaar/stackplan/domain/statespace"
	"github.com/felixgeelhaar/stackplan/domain/world"
)

func TestExplain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		world  string
		labels []world.Action
		want   []string
	}{
		{
			name:   "pick up",
			world:  "tiny",
			labels: []world.Action{world.PickUp},
			want:   []string{"Pick up the small white ball in column 0."},
		},
		{
			name:   "move and put back",
			world:  "small",
			labels: []world.Action{world.MoveRight, world.PickUp, world.MoveRight, world.PutDown, world.MoveLeft},
			want: []string{
				"Move right to column 1.",
				"Pick up the large red box in column 1.",
				"Move right to column 2.",
				"Put the large red box down on the floor in column 2.",
				"Move left to column 1.",
			},
		},
		{
			name:   "empty plan",
			world:  "tiny",
			labels: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Explain(world.Examples()[tt.world], tt.labels)
			if err != nil {
				t.Fatalf("Explain() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Explain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplain_IllegalAction(t *testing.T) {
	t.Parallel()

	_, err := Explain(world.Examples()["tiny"], []world.Action{world.MoveLeft})
	if !errors.Is(err, statespace.ErrIllegalAction) {
		t.Errorf("Explain() error = %v, want ErrIllegalAction", err)
	}
}
