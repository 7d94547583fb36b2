package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/generate"
	"github.com/specialistvlad/stimforge/internal/model"
)

// fileExtensions maps each target to the extension of its generated file.
var fileExtensions = map[model.Target]string{
	model.TargetNative: ".py",
	model.TargetWeb:    ".js",
}

// Run executes the mode selected by the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var err error
	switch {
	case a.config.Describe != "":
		err = a.describe(ctx)
	case a.config.Init != "":
		err = a.writeSkeleton(ctx)
	default:
		err = a.generate(ctx)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

// generate loads the design and writes it once per selected target.
func (a *App) generate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	targets, err := a.config.Targets()
	if err != nil {
		return err
	}

	exp, err := a.loader.Load(ctx, a.config.DesignPaths...)
	if err != nil {
		return fmt.Errorf("failed to load design: %w", err)
	}
	logger.Debug("Design loaded.", "experiment", exp.Name, "routines", len(exp.Routines))

	gen := generate.New(a.registry, a.config.Workers)
	for _, target := range targets {
		e, err := emit.For(target)
		if err != nil {
			return err
		}
		buf := emit.NewBuffer(e.IndentUnit())
		if err := gen.Generate(ctx, exp, target, buf); err != nil {
			return fmt.Errorf("failed to generate %s code: %w", target, err)
		}
		dest, err := a.output(exp.Name, target, buf)
		if err != nil {
			return err
		}
		logger.Info("Code written.", "target", target.String(), "lines", buf.Len(), "destination", dest)
	}
	return nil
}

// output writes buf to the output directory, or to the output writer when
// no directory is configured. It returns where the code went.
func (a *App) output(name string, target model.Target, buf *emit.Buffer) (string, error) {
	if a.config.OutPath == "" {
		if _, err := buf.WriteTo(a.outW); err != nil {
			return "", fmt.Errorf("failed to write %s code: %w", target, err)
		}
		return "stdout", nil
	}

	if err := os.MkdirAll(a.config.OutPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(a.config.OutPath, name+fileExtensions[target])
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := buf.WriteTo(f); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
