package app

import (
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/action"
	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/engine"
	"github.com/vk/taskgrid/internal/fsutil"
)

// App wires the configuration loader, the build engine and its file system
// and process capabilities together for one invocation.
type App struct {
	out    io.Writer
	logger *slog.Logger
	cfg    *Config
	loader config.Loader
	stamps engine.Stamper
	runner action.Runner
}

// Option overrides one of the App's capabilities, used by tests to swap the
// real file system or process runner for fakes.
type Option func(*App)

// WithStamper replaces the file-system timestamp source.
func WithStamper(s engine.Stamper) Option {
	return func(a *App) { a.stamps = s }
}

// WithRunner replaces the external command runner.
func WithRunner(r action.Runner) Option {
	return func(a *App) { a.runner = r }
}

// NewApp creates an App from a validated Config and a configuration loader.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		out:    outW,
		logger: newLogger(cfg, outW),
		cfg:    cfg,
		loader: loader,
		stamps: &fsutil.Stamps{Dir: cfg.Dir},
		runner: &action.CommandRunner{Dir: cfg.Dir, Stdout: outW, Stderr: outW},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
