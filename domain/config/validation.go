package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates planner configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors. Defaults are
// expected to have been applied.
func (v *Validator) Validate(config *PlannerConfig) ValidationErrors {
	v.errors = nil

	v.validateSearch(config)
	v.validateLogging(config)
	v.validateStore(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateSearch(config *PlannerConfig) {
	if config.Search.Budget < 1 {
		v.addError("search.budget", "budget must be positive")
	}
	if config.Search.DisplacementCost < 1 {
		v.addError("search.displacement_cost", "displacement_cost must be at least 1")
	}
}

func (v *Validator) validateLogging(config *PlannerConfig) {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(config.Logging.Level)] {
		v.addError("logging.level", fmt.Sprintf("invalid level: %s", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "json", "console":
	default:
		v.addError("logging.format", fmt.Sprintf("invalid format: %s", config.Logging.Format))
	}
}

func (v *Validator) validateStore(config *PlannerConfig) {
	switch config.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if config.Store.DSN == "" {
			v.addError("store.dsn", "dsn is required for the sqlite backend")
		}
	case BackendBadger, BackendFilesystem:
		if config.Store.Dir == "" {
			v.addError("store.dir", fmt.Sprintf("dir is required for the %s backend", config.Store.Backend))
		}
	case BackendRedis:
		if config.Store.Addr == "" {
			v.addError("store.addr", "addr is required for the redis backend")
		}
	default:
		v.addError("store.backend", fmt.Sprintf("invalid backend: %s", config.Store.Backend))
	}

	if config.Store.Retry.MaxAttempts < 1 {
		v.addError("store.retry.max_attempts", "max_attempts must be at least 1")
	}
	if config.Store.Retry.InitialDelay < 0 {
		v.addError("store.retry.initial_delay", "initial_delay must be non-negative")
	}
}
