package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skrylabs/skry/config"
	"github.com/skrylabs/skry/di"
	"github.com/skrylabs/skry/logger"
	"github.com/skrylabs/skry/server"
)

// App is a generic application with uniform lifecycle management. The type
// parameter C is the config type; any struct embedding config.ServiceConfig
// satisfies the constraint through promoted methods.
type App[C config.Config] struct {
	Name      string
	Version   string
	Cfg       C
	Container *di.Container
	Logger    *logger.Logger
	Server    *server.Server

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp creates an application from a typed config: it applies defaults,
// validates, initializes the logger, and creates the DI container.
func NewApp[C config.Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	if o.container != nil {
		app.Container = o.container
	} else {
		app.Container = di.New(di.WithLogger(app.Logger.WithComponent("di")))
	}

	return app, nil
}

// Serve attaches an HTTP server with the given config. Routes are registered
// on app.Server.GinEngine() before Run.
func (a *App[C]) Serve(cfg server.Config) *server.Server {
	a.Server = server.New(cfg, a.Container, a.Logger)
	return a.Server
}

// Run executes the application lifecycle: OnStart hooks, server start, block
// until SIGINT/SIGTERM or context cancellation, OnStop hooks, graceful
// shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	a.Logger.Info("starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart: %w", err)
	}

	if a.Server != nil {
		if err := a.Server.Start(ctx); err != nil {
			return err
		}
	}

	a.waitForSignal(ctx)
	return a.stop(ctx)
}

// RunTask executes a finite task with the same lifecycle, shutting down when
// the task finishes or a signal arrives. Use it for CLI tools and batch
// jobs.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart: %w", err)
	}

	taskCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	taskErr := task(taskCtx)

	if stopErr := a.stop(ctx); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) waitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", map[string]interface{}{"signal": sig.String()})
	case <-ctx.Done():
		a.Logger.Info("context cancelled")
	}
}

func (a *App[C]) stop(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.gracefulTimeout)
	defer cancel()

	var firstErr error
	if err := runHooks(stopCtx, a.onStop); err != nil {
		firstErr = fmt.Errorf("onStop: %w", err)
	}
	if a.Server != nil {
		if err := a.Server.Stop(stopCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	a.Logger.Info("application stopped", map[string]interface{}{"name": a.Name})
	return firstErr
}
