package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/stackplan/domain/world"
	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
)

// worldsOptions holds options shared by the worlds subcommands.
type worldsOptions struct {
	configPath string
	jsonOutput bool
	name       string
}

// newWorldsCmd creates the worlds command and its subcommands.
func (a *App) newWorldsCmd() *cobra.Command {
	opts := &worldsOptions{}

	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Manage stored worlds",
		Long: `Manage the named worlds in the configured store.

The store is selected by store.backend in the configuration (memory, sqlite,
badger, redis or filesystem). The example worlds are seeded into every store.

Examples:
  # List stored worlds
  stackplan worlds list

  # Show one world as YAML
  stackplan worlds show small

  # Import a world file into a SQLite store
  stackplan worlds import -c stackplan.yaml --name kitchen kitchen.yaml`,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored worlds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), opts, func(ctx context.Context, env *environment, store world.Store) error {
				names, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					_, _ = fmt.Fprintln(a.stdout, name)
				}
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), opts, func(ctx context.Context, env *environment, store world.Store) error {
				w, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return a.printWorld(w, opts.jsonOutput)
			})
		},
	}
	show.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the world as JSON")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a world read from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), opts, func(ctx context.Context, env *environment, store world.Store) error {
				return a.importWorld(ctx, env, store, args[0], opts.name)
			})
		},
	}
	importCmd.Flags().StringVar(&opts.name, "name", "", "Name to store the world under (default: file name)")

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), opts, func(ctx context.Context, env *environment, store world.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(a.stdout, "Deleted %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, show, importCmd, deleteCmd)
	return cmd
}

// withStore opens the configured store for the duration of fn.
func (a *App) withStore(ctx context.Context, opts *worldsOptions, fn func(context.Context, *environment, world.Store) error) (err error) {
	env, err := a.newEnvironment(opts.configPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.Close(context.Background()))
	}()

	store, err := env.openStore(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, env, store)
}

// importWorld loads path and stores it under name.
func (a *App) importWorld(ctx context.Context, env *environment, store world.Store, path, name string) error {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := world.ValidateName(name); err != nil {
		return err
	}

	w, err := env.loader.LoadWorldFile(path)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, w); err != nil {
		return err
	}

	logging.NewEvent(env.logger.Info()).Add(
		logging.World(name),
		logging.Int("stacks", len(w.Stacks)),
	).Msg("world imported")
	_, _ = fmt.Fprintf(a.stdout, "Imported %s (%d stacks, %d objects)\n", name, len(w.Stacks), len(w.Objects))
	return nil
}

// printWorld writes w as YAML, or JSON when asked.
func (a *App) printWorld(w world.State, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(w)
	}

	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return err
	}
	return enc.Close()
}
