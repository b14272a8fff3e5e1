package config

import (
	"slices"
	"strings"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(*PlannerConfig)
		wantErrPaths []string
	}{
		{
			name:   "defaults",
			mutate: func(*PlannerConfig) {},
		},
		{
			name:         "negative budget",
			mutate:       func(c *PlannerConfig) { c.Search.Budget = -1 },
			wantErrPaths: []string{"search.budget"},
		},
		{
			name:         "zero displacement cost",
			mutate:       func(c *PlannerConfig) { c.Search.DisplacementCost = -3 },
			wantErrPaths: []string{"search.displacement_cost"},
		},
		{
			name:         "unknown level",
			mutate:       func(c *PlannerConfig) { c.Logging.Level = "verbose" },
			wantErrPaths: []string{"logging.level"},
		},
		{
			name:         "unknown format",
			mutate:       func(c *PlannerConfig) { c.Logging.Format = "xml" },
			wantErrPaths: []string{"logging.format"},
		},
		{
			name:         "sqlite without dsn",
			mutate:       func(c *PlannerConfig) { c.Store.Backend = BackendSQLite },
			wantErrPaths: []string{"store.dsn"},
		},
		{
			name: "sqlite with dsn",
			mutate: func(c *PlannerConfig) {
				c.Store.Backend = BackendSQLite
				c.Store.DSN = "file:worlds.db"
			},
		},
		{
			name:         "badger without dir",
			mutate:       func(c *PlannerConfig) { c.Store.Backend = BackendBadger },
			wantErrPaths: []string{"store.dir"},
		},
		{
			name:         "filesystem without dir",
			mutate:       func(c *PlannerConfig) { c.Store.Backend = BackendFilesystem },
			wantErrPaths: []string{"store.dir"},
		},
		{
			name:         "redis without addr",
			mutate:       func(c *PlannerConfig) { c.Store.Backend = BackendRedis },
			wantErrPaths: []string{"store.addr"},
		},
		{
			name: "redis with addr",
			mutate: func(c *PlannerConfig) {
				c.Store.Backend = BackendRedis
				c.Store.Addr = "localhost:6379"
			},
		},
		{
			name:         "unknown backend",
			mutate:       func(c *PlannerConfig) { c.Store.Backend = "etcd" },
			wantErrPaths: []string{"store.backend"},
		},
		{
			name: "bad retry",
			mutate: func(c *PlannerConfig) {
				c.Store.Retry.MaxAttempts = -1
				c.Store.Retry.InitialDelay = -1
			},
			wantErrPaths: []string{"store.retry.max_attempts", "store.retry.initial_delay"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			errs := NewValidator().Validate(cfg)
			var paths []string
			for _, e := range errs {
				paths = append(paths, e.Path)
			}
			if !slices.Equal(paths, tt.wantErrPaths) {
				t.Errorf("Validate() paths = %v, want %v", paths, tt.wantErrPaths)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	if got := (ValidationErrors{}).Error(); got != "no validation errors" {
		t.Errorf("Error() = %q", got)
	}

	one := ValidationErrors{{Path: "search.budget", Message: "budget must be positive"}}
	if got, want := one.Error(), "search.budget: budget must be positive"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	two := append(one, ValidationError{Message: "other"})
	if got := two.Error(); !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "  - other") {
		t.Errorf("Error() = %q", got)
	}
}
