package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"

	domainconfig "github.com/felixgeelhaar/stackplan/domain/config"
	"github.com/felixgeelhaar/stackplan/domain/world"
	infraconfig "github.com/felixgeelhaar/stackplan/infrastructure/config"
	"github.com/felixgeelhaar/stackplan/infrastructure/logging"
	"github.com/felixgeelhaar/stackplan/infrastructure/resilience"
	badgerstore "github.com/felixgeelhaar/stackplan/infrastructure/storage/badger"
	"github.com/felixgeelhaar/stackplan/infrastructure/storage/filesystem"
	"github.com/felixgeelhaar/stackplan/infrastructure/storage/memory"
	redisstore "github.com/felixgeelhaar/stackplan/infrastructure/storage/redis"
	"github.com/felixgeelhaar/stackplan/infrastructure/storage/sqlite"
	"github.com/felixgeelhaar/stackplan/infrastructure/telemetry"
)

// environment holds what a command builds from the configuration.
type environment struct {
	config  *domainconfig.PlannerConfig
	loader  *infraconfig.Loader
	logger  *bolt.Logger
	tracing *telemetry.Tracing
	metrics *telemetry.MetricsProvider

	store   world.Store
	closers []func() error
}

// loadConfig reads the configuration file, or returns the defaults when path is empty.
func loadConfig(loader *infraconfig.Loader, path string) (*domainconfig.PlannerConfig, error) {
	if path == "" {
		return domainconfig.DefaultConfig(), nil
	}
	cfg, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newEnvironment loads the configuration and builds logging and telemetry.
// The world store is opened lazily by openStore.
func (a *App) newEnvironment(configPath string) (*environment, error) {
	loader := infraconfig.NewLoader()
	cfg, err := loadConfig(loader, configPath)
	if err != nil {
		return nil, err
	}

	env := &environment{
		config: cfg,
		loader: loader,
		logger: logging.New(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: a.stderr,
		}),
		metrics: telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig()),
	}

	tracingConfig := telemetry.TracingConfig{
		ServiceName:    "stackplan",
		ServiceVersion: Version,
	}
	if cfg.Telemetry.Enabled {
		tracingConfig.Output = a.stderr
	}
	env.tracing, err = telemetry.NewTracing(tracingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	if cfg.Telemetry.Enabled {
		env.tracing.Install()
	}
	if err := env.metrics.Error(); err != nil {
		logging.NewEvent(env.logger.Warn()).Add(
			logging.Component("telemetry"),
			logging.ErrorField(err),
		).Msg("metrics disabled")
	}

	return env, nil
}

// openStore opens the configured world store, seeds it with the example
// worlds and wraps it with retries.
func (e *environment) openStore(ctx context.Context) (world.Store, error) {
	if e.store != nil {
		return e.store, nil
	}

	var (
		store world.Store
		err   error
	)
	switch e.config.Store.Backend {
	case domainconfig.BackendSQLite:
		var s *sqlite.WorldStore
		s, err = sqlite.NewWorldStore(sqlite.DefaultConfig(), sqlite.WithDSN(e.config.Store.DSN))
		if err == nil {
			store = s
			e.closers = append(e.closers, s.Close)
		}
	case domainconfig.BackendBadger:
		var s *badgerstore.WorldStore
		s, err = badgerstore.NewWorldStore(badgerstore.DefaultConfig(),
			badgerstore.WithDir(e.config.Store.Dir),
			badgerstore.WithLogger(e.logger),
			badgerstore.WithSyncWrites(),
		)
		if err == nil {
			store = s
			e.closers = append(e.closers, s.Close)
		}
	case domainconfig.BackendRedis:
		var s *redisstore.WorldStore
		s, err = redisstore.NewWorldStore(redisstore.DefaultConfig(),
			redisstore.WithAddress(e.config.Store.Addr),
			redisstore.WithPassword(e.config.Store.Password),
			redisstore.WithKeyPrefix(e.config.Store.KeyPrefix),
		)
		if err == nil {
			store = s
			e.closers = append(e.closers, s.Close)
		}
	case domainconfig.BackendFilesystem:
		store, err = filesystem.NewWorldStore(e.config.Store.Dir)
	default:
		store, err = memory.NewWorldStore(memory.WithExamples())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s world store: %w", e.config.Store.Backend, err)
	}

	store = resilience.NewStore(store,
		resilience.WithRetryAttempts(e.config.Store.Retry.MaxAttempts),
		resilience.WithRetryDelay(e.config.Store.Retry.InitialDelay.Duration()),
	)
	if err := seedExamples(ctx, store); err != nil {
		return nil, err
	}

	logging.NewEvent(e.logger.Debug()).Add(
		logging.Component("store"),
		logging.Str("backend", e.config.Store.Backend),
	).Msg("world store opened")

	e.store = store
	return store, nil
}

// seedExamples stores every example world that is not present yet.
func seedExamples(ctx context.Context, store world.Store) error {
	for name, w := range world.Examples() {
		_, err := store.Get(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, world.ErrWorldNotFound) {
			return fmt.Errorf("failed to read world %s: %w", name, err)
		}
		if err := store.Put(ctx, name, w); err != nil {
			return fmt.Errorf("failed to seed world %s: %w", name, err)
		}
	}
	return nil
}

// Close flushes spans and releases the store.
func (e *environment) Close(ctx context.Context) error {
	var errs []error
	if err := e.tracing.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, c := range e.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
