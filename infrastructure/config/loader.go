// Package config loads planner configuration and world files.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/stackplan/domain/config"
)

// Loader reads planner configuration and world files.
type Loader struct {
	// ExpandEnv expands ${VAR} references before decoding.
	ExpandEnv bool
	// StrictEnv fails on references to unset variables without a default.
	StrictEnv bool
	// Validate runs the configuration validator after defaults are applied.
	Validate bool
	// AllowUnknown accepts keys the target type does not define.
	AllowUnknown bool
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// WithStrictEnv enables strict environment variable checking.
func WithStrictEnv(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.StrictEnv = enabled
	}
}

// WithValidation enables or disables configuration validation.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.Validate = enabled
	}
}

// WithUnknownFields accepts keys that would otherwise be rejected as typos.
func WithUnknownFields(allowed bool) LoaderOption {
	return func(l *Loader) {
		l.AllowUnknown = allowed
	}
}

// NewLoader creates a loader that expands the environment, validates and
// rejects unknown keys.
func NewLoader() *Loader {
	return NewLoaderWithOptions()
}

// NewLoaderWithOptions creates a loader with the specified options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	l := &Loader{
		ExpandEnv: true,
		Validate:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// FormatFromPath determines the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrUnsupportedFormat, ext)
	}
}

// LoadFile loads configuration from a file path.
func (l *Loader) LoadFile(path string) (*config.PlannerConfig, error) {
	f, format, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Load(f, format)
}

// Load loads configuration from a reader, applies defaults and validates.
func (l *Loader) Load(r io.Reader, format Format) (*config.PlannerConfig, error) {
	cfg := &config.PlannerConfig{}
	if err := l.decode(r, format, cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if l.Validate {
		validator := config.NewValidator()
		if errs := validator.Validate(cfg); errs.HasErrors() {
			return nil, fmt.Errorf("%w: %v", config.ErrValidationFailed, errs)
		}
	}

	return cfg, nil
}

// LoadString loads configuration from a string.
func (l *Loader) LoadString(content string, format Format) (*config.PlannerConfig, error) {
	return l.Load(strings.NewReader(content), format)
}

// decode expands and unmarshals r into the value pointed to by into. An
// empty document leaves into untouched.
func (l *Loader) decode(r io.Reader, format Format, into any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if l.ExpandEnv {
		expander := &envExpander{strict: l.StrictEnv}
		expanded, err := expander.Expand(string(data))
		if err != nil {
			return err
		}
		data = []byte(expanded)
	}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(!l.AllowUnknown)
		err = dec.Decode(into)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if !l.AllowUnknown {
			dec.DisallowUnknownFields()
		}
		err = dec.Decode(into)
	default:
		return fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
	}
	return nil
}

func openFile(path string) (*os.File, Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", config.ErrFileNotFound, path)
		}
		return nil, "", fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is a directory", config.ErrInvalidFormat, path)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, format, nil
}
