package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stackplan/application"
	"github.com/felixgeelhaar/stackplan/domain/goal"
	"github.com/felixgeelhaar/stackplan/domain/statespace"
	"github.com/felixgeelhaar/stackplan/domain/world"
	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
	"github.com/felixgeelhaar/stackplan/infrastructure/watch"
)

// planOptions holds options for the plan command.
type planOptions struct {
	configPath string
	worldName  string
	worldFile  string
	goals      []string
	budget     int
	timeout    time.Duration
	jsonOutput bool
	explain    bool
	watch      bool
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Find the shortest plan that makes a goal true",
		Long: `Plan searches for the cheapest sequence of arm actions that reaches a goal.

Every --goal is one interpretation of the instruction. They are tried in order
and every interpretation that can be reached is reported.

Examples:
  # Pick up the small black ball in the example world
  stackplan plan --world small --goal "holding(f)"

  # Try two interpretations, explain each step
  stackplan plan --world small --goal "ontop(e, m)" --goal "inside(e, k)" --explain

  # Plan in a world read from a file, with a smaller budget
  stackplan plan --world-file world.yaml --goal "ontop(a, floor)" --budget 5000 --json

  # Plan again on every save of the world file
  stackplan plan --world-file world.yaml --goal "holding(a)" --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&opts.worldName, "world", "w", "", "Name of a stored world")
	cmd.Flags().StringVar(&opts.worldFile, "world-file", "", "Path to a YAML or JSON world file")
	cmd.Flags().StringArrayVarP(&opts.goals, "goal", "g", nil, "Goal formula (repeatable)")
	cmd.Flags().IntVar(&opts.budget, "budget", 0, "Expansion budget per goal (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Planning timeout")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Describe every step and the final world")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Plan again whenever the world file changes")

	_ = cmd.MarkFlagRequired("goal")
	cmd.MarkFlagsMutuallyExclusive("world", "world-file")
	cmd.MarkFlagsOneRequired("world", "world-file")

	return cmd
}

// solutionOutput is the JSON form of one solution.
type solutionOutput struct {
	Interpretation string     `json:"interpretation"`
	Plan           []string   `json:"plan"`
	Cost           int        `json:"cost"`
	Visited        int        `json:"visited"`
	Steps          []string   `json:"steps,omitempty"`
	Final          [][]string `json:"final,omitempty"`
}

// runPlan plans every goal against the selected world.
func (a *App) runPlan(ctx context.Context, opts *planOptions) (err error) {
	if opts.watch && opts.worldFile == "" {
		return fmt.Errorf("--watch requires --world-file")
	}

	env, err := a.newEnvironment(opts.configPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.Close(context.Background()))
	}()

	interps, err := parseGoals(opts.goals)
	if err != nil {
		return err
	}

	budget := env.config.Search.Budget
	if opts.budget > 0 {
		budget = opts.budget
	}

	planner, err := application.NewPlanner(
		application.WithBudget(budget),
		application.WithDisplacementCost(env.config.Search.DisplacementCost),
		application.WithLogger(env.logger),
		application.WithMetrics(env.metrics),
		application.WithTracer(env.tracing.Tracer("github.com/felixgeelhaar/stackplan/application")),
	)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	if opts.watch {
		return a.watchPlan(ctx, env, planner, interps, opts)
	}

	w, label, err := a.resolveWorld(ctx, env, opts)
	if err != nil {
		return err
	}
	return a.planWorld(ctx, env, planner, w, label, interps, opts)
}

// watchPlan plans once and again every time the world file changes, until
// ctx is done. Failures are reported without stopping the watch.
func (a *App) watchPlan(ctx context.Context, env *environment, planner *application.Planner, interps []application.Interpretation, opts *planOptions) error {
	changes, err := watch.New(opts.worldFile, watch.WithLogger(env.logger)).Start(ctx)
	if err != nil {
		return err
	}

	replan := func() {
		w, label, err := a.resolveWorld(ctx, env, opts)
		if err == nil {
			err = a.planWorld(ctx, env, planner, w, label, interps, opts)
		}
		if err != nil && ctx.Err() == nil {
			_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
	}

	replan()
	for range changes {
		logging.NewEvent(env.logger.Info()).Add(
			logging.World(opts.worldFile),
		).Msg("world changed")
		_, _ = fmt.Fprintln(a.stdout)
		replan()
	}
	return nil
}

// planWorld plans interps against w and prints the solutions.
func (a *App) planWorld(ctx context.Context, env *environment, planner *application.Planner, w world.State, label string, interps []application.Interpretation, opts *planOptions) error {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	logging.NewEvent(env.logger.Debug()).Add(
		logging.World(label),
		logging.Budget(planner.Budget()),
		logging.Int("goals", len(interps)),
	).Msg("planning")

	solutions, err := planner.Plan(ctx, w, interps)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	outputs := make([]solutionOutput, len(solutions))
	for i, s := range solutions {
		out := solutionOutput{
			Interpretation: s.Interpretation.Name,
			Plan:           s.Plan,
			Cost:           s.Cost,
			Visited:        s.Visited,
		}
		if opts.explain {
			steps, err := application.Explain(w, s.Labels)
			if err != nil {
				return err
			}
			final, err := statespace.Apply(w, s.Labels)
			if err != nil {
				return err
			}
			out.Steps, out.Final = steps, final.Stacks
		}
		outputs[i] = out
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"world":     label,
			"solutions": outputs,
		})
	}

	for i, out := range outputs {
		if i > 0 {
			_, _ = fmt.Fprintln(a.stdout)
		}
		_, _ = fmt.Fprintf(a.stdout, "Goal: %s\n", out.Interpretation)
		_, _ = fmt.Fprintf(a.stdout, "  Plan: %s\n", strings.Join(out.Plan, " "))
		_, _ = fmt.Fprintf(a.stdout, "  Cost: %d\n", out.Cost)
		_, _ = fmt.Fprintf(a.stdout, "  Visited: %d\n", out.Visited)
		if !opts.explain {
			continue
		}
		for n, step := range out.Steps {
			_, _ = fmt.Fprintf(a.stdout, "  %d. %s\n", n+1, step)
		}
		_, _ = fmt.Fprintf(a.stdout, "  Final: %s\n", formatStacks(out.Final))
	}

	return nil
}

// parseGoals turns each goal flag into an interpretation named after its text.
func parseGoals(goals []string) ([]application.Interpretation, error) {
	interps := make([]application.Interpretation, 0, len(goals))
	for i, text := range goals {
		f, err := goal.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i+1, err)
		}
		interps = append(interps, application.Interpretation{
			Name:    f.String(),
			Formula: f,
		})
	}
	return interps, nil
}

// resolveWorld reads the world from --world-file or from the store.
func (a *App) resolveWorld(ctx context.Context, env *environment, opts *planOptions) (world.State, string, error) {
	if opts.worldFile != "" {
		w, err := env.loader.LoadWorldFile(opts.worldFile)
		if err != nil {
			return world.State{}, "", err
		}
		return w, opts.worldFile, nil
	}

	store, err := env.openStore(ctx)
	if err != nil {
		return world.State{}, "", err
	}
	w, err := store.Get(ctx, opts.worldName)
	if err != nil {
		return world.State{}, "", err
	}
	return w, opts.worldName, nil
}

// formatStacks renders stacks as "[e] [g l] []".
func formatStacks(stacks [][]string) string {
	parts := make([]string, len(stacks))
	for i, s := range stacks {
		parts[i] = "[" + strings.Join(s, " ") + "]"
	}
	return strings.Join(parts, " ")
}
