package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/experiment"
	"github.com/specialistvlad/stimforge/internal/hcl_adapter"
	"github.com/specialistvlad/stimforge/internal/i18n"
	"github.com/specialistvlad/stimforge/internal/registry"
)

// Loader turns design files into an Experiment.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*experiment.Experiment, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	loader   Loader
	catalog  *i18n.Bundle
}

// NewApp is the constructor for the main application. Generated code and
// descriptions go to outW, logs go to logW. Without modules the core
// component types are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All component modules registered.", "count", len(modules), "types", reg.Types())

	// Validate the integrity of the registry.
	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (mismatch between factory and writer), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		loader:   hcl_adapter.NewLoader(reg),
		catalog:  i18n.Default(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
