// Package app wires the logger, the options loader and the compiler into
// one invocation: discover sources, compile each in turn, print a summary
// per file, stop on the first failure.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/arclang/internal/cli"
	"github.com/vk/arclang/internal/compiler"
	"github.com/vk/arclang/internal/config"
	"github.com/vk/arclang/internal/ctxlog"
	"github.com/vk/arclang/internal/fsutil"
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	options *config.Options
	comp    *compiler.Compiler
}

// New constructs a fully initialized App with its own isolated logger.
// Options-file settings win over defaults; CLI log flags win over both.
func New(ctx context.Context, outW io.Writer, cliConfig *cli.Config, loader config.Loader) (*App, error) {
	opts, err := loader.Load(ctx, cliConfig.OptionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	if cliConfig.LogLevel != "" {
		opts.LogLevel = cliConfig.LogLevel
	}
	if cliConfig.LogFormat != "" {
		opts.LogFormat = cliConfig.LogFormat
	}

	logger := newLogger(opts.LogLevel, opts.LogFormat, outW)
	logger.Debug("Options resolved.", "target", opts.Target, "optimization_level", opts.OptimizationLevel)

	comp := compiler.New(compiler.Options{
		Target:            opts.Target,
		OptimizationLevel: opts.OptimizationLevel,
	})

	return &App{
		outW:    outW,
		logger:  logger,
		options: opts,
		comp:    comp,
	}, nil
}

// Run compiles every source file under the configured path and prints a
// one-line summary for each. The first error aborts the run.
func (a *App) Run(ctx context.Context, sourcePath string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	files, err := fsutil.FindSourceFiles(sourcePath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found under %s", fsutil.SourceExtension, sourcePath)
	}
	a.logger.Debug("Sources discovered.", "count", len(files))

	for _, file := range files {
		result, err := a.comp.CompileFile(ctx, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		metrics := result.Semantic.Metrics()
		fmt.Fprintf(a.outW, "%s: %d requirements, %d components, %d functions, %d traces, coverage %.1f%%\n",
			file,
			metrics.RequirementsCount,
			metrics.ComponentsCount,
			metrics.FunctionsCount,
			metrics.TracesCount,
			metrics.TraceabilityCoverage,
		)
	}
	return nil
}
