package goal

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Formula
	}{
		{"holding(a)", Formula{{Lit(Holding, "a")}}},
		{" ontop( a , floor ) ", Formula{{Lit(OnTop, "a", "floor")}}},
		{"OnTop(a,b)", Formula{{Lit(OnTop, "a", "b")}}},
		{"ontop(a,b) & holding(c)", Formula{{Lit(OnTop, "a", "b"), Lit(Holding, "c")}}},
		{"holding(a) | holding(b) & beside(c,d)", Formula{
			{Lit(Holding, "a")},
			{Lit(Holding, "b"), Lit(Beside, "c", "d")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{"", ErrInvalidFormula},
		{"holding", ErrInvalidFormula},
		{"holding(a", ErrInvalidFormula},
		{"holding()", ErrInvalidFormula},
		{"holding(a) &", ErrInvalidFormula},
		{"holding(a) holding(b)", ErrInvalidFormula},
		{"touching(a,b)", ErrUnknownRelation},
		{"holding(a,b)", ErrArity},
		{"ontop(a)", ErrArity},
		{"holding(floor)", ErrInvalidFormula},
		{"ontop(floor,a)", ErrInvalidFormula},
		{"beside(a,floor)", ErrInvalidFormula},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidFormula) {
				t.Errorf("Parse(%q) error = %v, want it to wrap ErrInvalidFormula", tt.input, err)
			}
		})
	}
}

func TestFormula_StringRoundTrip(t *testing.T) {
	t.Parallel()

	input := "ontop(a,floor) & holding(b) | inside(c,k)"
	f := MustParse(input)
	if got := f.String(); got != input {
		t.Errorf("String() = %q, want %q", got, input)
	}
}

func TestFormula_Objects(t *testing.T) {
	t.Parallel()

	f := MustParse("ontop(a,floor) & holding(b) | inside(a,k)")
	want := []string{"a", "b", "k"}
	if got := f.Objects(); !reflect.DeepEqual(got, want) {
		t.Errorf("Objects() = %v, want %v", got, want)
	}
}
