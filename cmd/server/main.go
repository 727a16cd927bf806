// Command server runs the todo API. APP_PROFILE picks the config profile;
// SIGINT or SIGTERM drains in-flight requests before exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/memory"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/postgres"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/remote"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/sqlite"
	adapthttp "github.com/jsamuelsen11/todo-api/internal/adapters/http"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-api/internal/app"
	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/health"
	"github.com/jsamuelsen11/todo-api/internal/platform/httpclient"
	"github.com/jsamuelsen11/todo-api/internal/platform/logging"
	"github.com/jsamuelsen11/todo-api/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

const (
	otelShutdownTimeout = 5 * time.Second
	storeOpenTimeout    = 10 * time.Second

	metricsScope = "github.com/jsamuelsen11/todo-api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is canceled by a shutdown signal.
func run(ctx context.Context) error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE is not set (local, dev, qa or prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, metricsScope)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), otelShutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(flushCtx); err != nil {
			logger.Error("telemetry flush failed", slog.Any("error", err))
		}
	}()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	registerDependencies(injector, cfg, logger)

	// The store opens first so a bad DSN fails before anything listens.
	st, err := do.Invoke[*store](injector)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("closing store failed", slog.Any("error", err))
		}
	}()

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(st.checker)
	registry.Register(do.MustInvoke[*datasource.Guarded](injector))

	logger.Info("todo api starting",
		slog.String("profile", profile),
		slog.String("addr", server.Addr()),
		slog.String("store", st.driver),
	)
	if err := server.ListenAndRun(ctx); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// store is the physical datasource chosen by store.driver together with its
// health checker and release hook.
type store struct {
	driver  string
	ds      ports.TodoDatasource
	checker ports.HealthChecker
	close   func() error
}

// Close releases the store's connections. Nil-safe.
func (s *store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

func openStore(cfg *config.StoreConfig, metrics *telemetry.Metrics, logger *slog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		defer cancel()

		pool, err := postgres.Open(ctx, postgres.Config{
			DSN:          cfg.Postgres.DSN,
			MaxConns:     cfg.Postgres.MaxConns,
			EnsureSchema: cfg.Postgres.EnsureSchema,
		})
		if err != nil {
			return nil, err
		}
		ds := postgres.New(pool)
		return &store{
			driver:  cfg.Driver,
			ds:      ds,
			checker: ds,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		ds := sqlite.New(db)
		return &store{
			driver:  cfg.Driver,
			ds:      ds,
			checker: ds,
			close:   func() error { return sqlite.Close(db) },
		}, nil

	case config.DriverRemote:
		client := httpclient.New(&cfg.Remote, "remote-todo-api", metrics, logger)
		ds := remote.New(client, cfg.Remote.HealthPath, logger)
		return &store{driver: cfg.Driver, ds: ds, checker: ds}, nil

	case config.DriverMemory:
		ds := memory.New()
		return &store{driver: cfg.Driver, ds: ds, checker: ds}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*store, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		st, err := openStore(&cfg.Store, metrics, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", slog.String("driver", st.driver))
		return st, nil
	})

	do.Provide(injector, func(i do.Injector) (*datasource.Guarded, error) {
		st := do.MustInvoke[*store](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return datasource.NewGuarded(st.ds, st.driver, &cfg.Store.CircuitBreaker, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoRepository, error) {
		guarded := do.MustInvoke[*datasource.Guarded](i)
		return app.NewTodoRepository(guarded, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(cfg.Server.HealthCheckTimeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		repo := do.MustInvoke[ports.TodoRepository](i)
		return handlers.NewTodoHandler(repo), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		var static nethttp.Handler
		if cfg.Server.PublicPath != "" {
			static = handlers.NewStaticHandler(cfg.Server.PublicPath)
		}

		stack := middleware.Chain(
			middleware.Recovery(logger),
			middleware.CORS(cfg.Server.AllowedOrigins),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
		)
		return adapthttp.NewRouter(todoH, healthH, static, stack), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
