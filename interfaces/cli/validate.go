package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/stackplan/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	worldFile  string
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration or world file",
		Long: `Validate a planner configuration file, a world file, or both.

This command checks:
  - File format (YAML or JSON)
  - Field values and constraints
  - Store backend settings
  - Environment variable references (in strict mode)
  - World structure and stacking rules (with --world-file)

Examples:
  # Validate a configuration file
  stackplan validate -c stackplan.yaml

  # Strict validation (fail on missing env vars)
  stackplan validate -c stackplan.yaml --strict

  # Validate a world file
  stackplan validate --world-file kitchen.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().StringVar(&opts.worldFile, "world-file", "", "Path to a world file")

	return cmd
}

// validate checks the requested files and prints a summary.
func (a *App) validate(opts *validateOptions) error {
	if opts.configPath == "" && opts.worldFile == "" {
		return fmt.Errorf("nothing to validate (use -c or --world-file)")
	}

	loader := infraconfig.NewLoaderWithOptions(
		infraconfig.WithValidation(true),
		infraconfig.WithStrictEnv(opts.strict),
	)

	if opts.configPath != "" {
		cfg, err := loader.LoadFile(opts.configPath)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		_, _ = fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
		if cfg.Name != "" {
			_, _ = fmt.Fprintf(a.stdout, "  Name: %s\n", cfg.Name)
		}
		_, _ = fmt.Fprintf(a.stdout, "  Search budget: %d\n", cfg.Search.Budget)
		_, _ = fmt.Fprintf(a.stdout, "  Displacement cost: %d\n", cfg.Search.DisplacementCost)
		_, _ = fmt.Fprintf(a.stdout, "  Logging: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		_, _ = fmt.Fprintf(a.stdout, "  Store: %s\n", cfg.Store.Backend)
		_, _ = fmt.Fprintf(a.stdout, "  Store retries: %d (initial delay %s)\n",
			cfg.Store.Retry.MaxAttempts, cfg.Store.Retry.InitialDelay.Duration())
		if cfg.Telemetry.Enabled {
			_, _ = fmt.Fprintf(a.stdout, "  Telemetry: enabled\n")
		}
	}

	if opts.worldFile != "" {
		w, err := loader.LoadWorldFile(opts.worldFile)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		_, _ = fmt.Fprintf(a.stdout, "✓ World is valid\n")
		_, _ = fmt.Fprintf(a.stdout, "  Stacks: %d\n", len(w.Stacks))
		_, _ = fmt.Fprintf(a.stdout, "  Objects: %d\n", len(w.Objects))
		if w.Holding != "" {
			_, _ = fmt.Fprintf(a.stdout, "  Holding: %s\n", w.Holding)
		}
	}

	return nil
}
