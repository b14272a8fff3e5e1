package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const tinyWorldYAML = `
arm: 0
stacks:
  - [a]
  - []
objects:
  a:
    form: ball
    size: small
    color: white
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := New().WithOutput(&stdout, &stderr).ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Version(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "stackplan version "+Version) {
		t.Errorf("version output = %q, want stackplan version %s", out, Version)
	}
}

func TestApp_Help(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"plan", "worlds", "validate", "version"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q, got: %s", want, out)
		}
	}
}

func TestApp_Plan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "stored world",
			args: []string{"plan", "--world", "tiny", "--goal", "holding(a)"},
			want: []string{"Goal: holding(a)", "Plan: p", "Cost: 1"},
		},
		{
			name: "already satisfied",
			args: []string{"plan", "-w", "tiny", "-g", "ontop(a, floor)"},
			want: []string{"Plan: The goal is already satisfied.", "Cost: 0"},
		},
		{
			name: "fallback to second goal",
			args: []string{"plan", "-w", "impossible", "-g", "ontop(e, floor)", "-g", "inside(e, k)"},
			want: []string{"Goal: inside(e,k)"},
		},
		{
			name: "explain",
			args: []string{"plan", "-w", "small", "-g", "holding(f)", "--explain"},
			want: []string{
				"Plan: r r r p",
				"1. Move right to column 1.",
				"4. Pick up the small black ball in column 3.",
				"Final: [e] [g l] [] [k m] []",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("plan command failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("plan output missing %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestApp_Plan_FallbackOmitsFailure(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "plan", "-w", "impossible", "-g", "ontop(e, floor)", "-g", "inside(e, k)")
	if err != nil {
		t.Fatalf("plan command failed: %v", err)
	}
	if strings.Contains(out, "Goal: ontop(e,floor)") {
		t.Errorf("plan output lists the unreachable goal:\n%s", out)
	}
}

func TestApp_Plan_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "tiny.yaml", tinyWorldYAML)
	out, _, err := run(t, "plan", "--world-file", path, "--goal", "holding(a)", "--json", "--explain")
	if err != nil {
		t.Fatalf("plan command failed: %v", err)
	}

	var result struct {
		World     string           `json:"world"`
		Solutions []solutionOutput `json:"solutions"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, out)
	}
	if result.World != path {
		t.Errorf("world = %q, want %q", result.World, path)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(solutions) = %d, want 1", len(result.Solutions))
	}
	sol := result.Solutions[0]
	if strings.Join(sol.Plan, "") != "p" || sol.Cost != 1 {
		t.Errorf("solution = %+v, want plan [p] with cost 1", sol)
	}
	if len(sol.Steps) != 1 || sol.Steps[0] != "Pick up the small white ball in column 0." {
		t.Errorf("steps = %q", sol.Steps)
	}
	if len(sol.Final) != 2 || len(sol.Final[0]) != 0 {
		t.Errorf("final = %v, want two empty stacks", sol.Final)
	}
}

func TestApp_Plan_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing goal", []string{"plan", "-w", "tiny"}, "goal"},
		{"missing world", []string{"plan", "-g", "holding(a)"}, "world"},
		{"both worlds", []string{"plan", "-w", "tiny", "--world-file", "x.yaml", "-g", "holding(a)"}, "world"},
		{"unknown world", []string{"plan", "-w", "nowhere", "-g", "holding(a)"}, "world not found"},
		{"bad goal", []string{"plan", "-w", "tiny", "-g", "holding(a"}, "goal 1"},
		{"unreachable", []string{"plan", "-w", "impossible", "-g", "ontop(e, floor)"}, "goal is unreachable"},
		{"budget", []string{"plan", "-w", "small", "-g", "ontop(e, m)", "--budget", "3"}, "after visiting 3 states"},
		{"unknown object", []string{"plan", "-w", "tiny", "-g", "holding(z)"}, "unknown object"},
		{"watch needs file", []string{"plan", "-w", "tiny", "-g", "holding(a)", "--watch"}, "--watch requires --world-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("plan command succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err.Error(), tt.want)
			}
		})
	}
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a watch.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(buf.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("output never contained %q:\n%s", want, buf.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestApp_Plan_Watch(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "tiny.yaml", tinyWorldYAML)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- New().WithOutput(&stdout, &stderr).ExecuteWithArgs(ctx,
			[]string{"plan", "--world-file", path, "-g", "holding(a)", "--watch"})
	}()

	waitFor(t, &stdout, "Plan: p\n")

	moved := strings.Replace(tinyWorldYAML, "  - [a]\n  - []", "  - []\n  - [a]", 1)
	if err := os.WriteFile(path, []byte(moved), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &stdout, "Plan: r p\n")

	// A broken world is reported and the watch keeps running.
	if err := os.WriteFile(path, []byte("stacks: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &stderr, "Error:")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("plan --watch error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("plan --watch did not stop after cancel")
	}
}

func TestApp_Plan_ConfigBudget(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "stackplan.yaml", `
search:
  budget: 2
logging:
  level: error
`)
	_, _, err := run(t, "plan", "-c", cfg, "-w", "small", "-g", "holding(m)")
	if err == nil || !strings.Contains(err.Error(), "after visiting 2 states") {
		t.Errorf("error = %v, want the configured budget to apply", err)
	}
}

func TestApp_Plan_Telemetry(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "stackplan.yaml", `
logging:
  level: error
telemetry:
  enabled: true
`)
	_, stderr, err := run(t, "plan", "-c", cfg, "-w", "tiny", "-g", "holding(a)")
	if err != nil {
		t.Fatalf("plan command failed: %v", err)
	}
	if !strings.Contains(stderr, `"Name":"plan"`) {
		t.Errorf("stderr missing exported plan span, got:\n%s", stderr)
	}
}

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "stackplan.yaml", `
name: test
search:
  budget: 5000
store:
  backend: memory
`)
	out, _, err := run(t, "validate", "-c", cfg)
	if err != nil {
		t.Fatalf("validate command failed: %v", err)
	}
	for _, want := range []string{"Configuration is valid", "Name: test", "Search budget: 5000", "Store: memory"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q, got:\n%s", want, out)
		}
	}
}

func TestApp_ValidateWorld(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "tiny.yaml", tinyWorldYAML)
	out, _, err := run(t, "validate", "--world-file", path)
	if err != nil {
		t.Fatalf("validate command failed: %v", err)
	}
	if !strings.Contains(out, "World is valid") || !strings.Contains(out, "Stacks: 2") {
		t.Errorf("validate output = %q", out)
	}
}

func TestApp_ValidateInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{"no input", func(*testing.T) []string { return []string{"validate"} }},
		{"bad budget", func(t *testing.T) []string {
			return []string{"validate", "-c", writeFile(t, "c.yaml", "search:\n  budget: -1\n")}
		}},
		{"sqlite without dsn", func(t *testing.T) []string {
			return []string{"validate", "-c", writeFile(t, "c.yaml", "store:\n  backend: sqlite\n")}
		}},
		{"missing env in strict mode", func(t *testing.T) []string {
			return []string{"validate", "--strict", "-c", writeFile(t, "c.yaml", "name: ${STACKPLAN_TEST_UNSET_VAR}\n")}
		}},
		{"ball on a brick", func(t *testing.T) []string {
			return []string{"validate", "--world-file", writeFile(t, "w.yaml", `
stacks:
  - [b, a]
objects:
  a: {form: ball, size: small}
  b: {form: brick, size: large}
`)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := run(t, tt.args(t)...); err == nil {
				t.Error("validate command succeeded, want error")
			}
		})
	}
}

func TestApp_Worlds(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "worlds", "list")
	if err != nil {
		t.Fatalf("worlds list failed: %v", err)
	}
	if got, want := strings.Fields(out), []string{"impossible", "medium", "small", "tiny"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("worlds list = %v, want %v", got, want)
	}

	out, _, err = run(t, "worlds", "show", "tiny")
	if err != nil {
		t.Fatalf("worlds show failed: %v", err)
	}
	if !strings.Contains(out, "form: ball") {
		t.Errorf("worlds show output = %q, want YAML with the ball", out)
	}

	out, _, err = run(t, "worlds", "show", "tiny", "--json")
	if err != nil {
		t.Fatalf("worlds show --json failed: %v", err)
	}
	if !strings.Contains(out, `"form": "ball"`) {
		t.Errorf("worlds show --json output = %q", out)
	}
}

func TestApp_Worlds_Persistent(t *testing.T) {
	t.Parallel()

	backends := []struct {
		name   string
		config func(dir string) string
	}{
		{"sqlite", func(dir string) string {
			return "store:\n  backend: sqlite\n  dsn: " + filepath.Join(dir, "worlds.db") + "\nlogging:\n  level: error\n"
		}},
		{"badger", func(dir string) string {
			return "store:\n  backend: badger\n  dir: " + filepath.Join(dir, "badger") + "\nlogging:\n  level: error\n"
		}},
		{"filesystem", func(dir string) string {
			return "store:\n  backend: filesystem\n  dir: " + filepath.Join(dir, "worlds") + "\nlogging:\n  level: error\n"
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			cfg := writeFile(t, "stackplan.yaml", b.config(t.TempDir()))
			world := writeFile(t, "kitchen.yaml", tinyWorldYAML)

			out, _, err := run(t, "worlds", "import", "-c", cfg, world)
			if err != nil {
				t.Fatalf("worlds import failed: %v", err)
			}
			if !strings.Contains(out, "Imported kitchen") {
				t.Errorf("worlds import output = %q", out)
			}

			out, _, err = run(t, "plan", "-c", cfg, "-w", "kitchen", "-g", "holding(a)")
			if err != nil {
				t.Fatalf("plan against imported world failed: %v", err)
			}
			if !strings.Contains(out, "Plan: p") {
				t.Errorf("plan output = %q", out)
			}

			if _, _, err := run(t, "worlds", "delete", "-c", cfg, "kitchen"); err != nil {
				t.Fatalf("worlds delete failed: %v", err)
			}
			if _, _, err := run(t, "worlds", "show", "-c", cfg, "kitchen"); err == nil {
				t.Error("worlds show after delete succeeded, want error")
			}
		})
	}
}

func TestApp_Worlds_ImportInvalidName(t *testing.T) {
	t.Parallel()

	world := writeFile(t, "tiny.yaml", tinyWorldYAML)
	if _, _, err := run(t, "worlds", "import", "--name", "bad name!", world); err == nil {
		t.Error("worlds import succeeded, want invalid name error")
	}
}

func TestFormatStacks(t *testing.T) {
	t.Parallel()

	got := formatStacks([][]string{{"e"}, {"g", "l"}, {}})
	if want := "[e] [g l] []"; got != want {
		t.Errorf("formatStacks() = %q, want %q", got, want)
	}
}
