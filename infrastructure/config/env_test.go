package config

import (
	"errors"
	"strings"
	"testing"

	domainconfig "github.com/felixgeelhaar/stackplan/domain/config"
)

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestEnvExpander_Expand(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{
		"HOME_DIR": "/home/planner",
		"EMPTY":    "",
		"NESTED":   "$HOME_DIR",
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bracket syntax", input: "${HOME_DIR}", want: "/home/planner"},
		{name: "dollar syntax", input: "$HOME_DIR/worlds", want: "/home/planner/worlds"},
		{name: "embedded in text", input: "dir: ${HOME_DIR}/db", want: "dir: /home/planner/db"},
		{name: "default when unset", input: "${MISSING:-memory}", want: "memory"},
		{name: "default when empty", input: "${EMPTY:-memory}", want: "memory"},
		{name: "default ignored when set", input: "${HOME_DIR:-x}", want: "/home/planner"},
		{name: "unset becomes empty", input: "a${MISSING}b", want: "ab"},
		{name: "values are not re-expanded", input: "${NESTED}", want: "$HOME_DIR"},
		{name: "no variables", input: "budget: 10", want: "budget: 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &envExpander{lookup: env}
			got, err := e.Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnvExpander_Missing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strict   bool
		input    string
		wantText string
	}{
		{name: "required", input: "${DSN:?set the sqlite dsn}", wantText: "DSN: set the sqlite dsn"},
		{name: "strict bracket", strict: true, input: "${DSN}", wantText: "DSN"},
		{name: "strict simple", strict: true, input: "$DSN and $DIR", wantText: "DSN, DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &envExpander{strict: tt.strict, lookup: fakeEnv(nil)}
			_, err := e.Expand(tt.input)
			if !errors.Is(err, domainconfig.ErrMissingEnvVar) {
				t.Fatalf("Expand() error = %v, want %v", err, domainconfig.ErrMissingEnvVar)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Expand() error = %v, want it to mention %q", err, tt.wantText)
			}
		})
	}
}

func TestExpandEnv_UsesProcessEnvironment(t *testing.T) {
	t.Setenv("STACKPLAN_TEST_BACKEND", "badger")

	if got := ExpandEnv("backend: ${STACKPLAN_TEST_BACKEND}"); got != "backend: badger" {
		t.Errorf("ExpandEnv() = %q, want %q", got, "backend: badger")
	}
	if _, err := ExpandEnvStrict("${STACKPLAN_TEST_UNSET_VAR}"); err == nil {
		t.Error("ExpandEnvStrict() error = nil, want error")
	}
}
