// Package app implements the application layer for rulegen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/rulegen/internal/engine/enhancement"
	"go.trai.ch/rulegen/internal/engine/expander"
	"go.trai.ch/rulegen/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Cache operation names reported to the cache event listener.
const (
	OperationStateLookup = "state_lookup"
	OperationStateStore  = "state_store"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	fs           ports.ProjectFilesystem
	logger       ports.Logger
	store        ports.StateStore
	telemetry    ports.Telemetry
	openEvents   ports.CacheEventLogFactory

	out         io.Writer
	now         func() time.Time
	concurrency int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fs ports.ProjectFilesystem,
	log ports.Logger,
	store ports.StateStore,
	telemetry ports.Telemetry,
	openEvents ports.CacheEventLogFactory,
) *App {
	return &App{
		configLoader: loader,
		fs:           fs,
		logger:       log,
		store:        store,
		telemetry:    telemetry,
		openEvents:   openEvents,
		out:          os.Stdout,
		now:          time.Now,
		concurrency:  runtime.NumCPU(),
	}
}

// WithOutput sets the writer listings are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithClock replaces the clock used for record and event timestamps.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithConcurrency bounds the number of targets expanded in parallel.
func (a *App) WithConcurrency(n int) *App {
	if n > 0 {
		a.concurrency = n
	}
	return a
}

// Options configures a single invocation.
type Options struct {
	// ConfigPath is the workspace file or the directory holding it.
	ConfigPath string
	// StateDir overrides the directory expansion records are kept in.
	StateDir string
	// BuildID identifies the invocation in cache events. Generated when empty.
	BuildID string
}

func (o Options) configPath() string {
	if o.ConfigPath == "" {
		return "."
	}
	return o.ConfigPath
}

func (o Options) stateDir(root string) string {
	if o.StateDir != "" {
		return o.StateDir
	}
	return filepath.Join(root, domain.DefaultStatePath())
}

func traceDir(root string) string {
	return filepath.Join(root, domain.DefaultTracePath())
}

// Expand expands the given test targets, or every declared test when none are given,
// and renders the resulting rule graph. Targets fail independently: the rules of
// successful targets are still recorded and rendered.
func (a *App) Expand(ctx context.Context, targetNames []string, opts Options) error {
	ws, err := a.configLoader.Load(opts.configPath())
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	targets, err := selectTargets(ws, targetNames)
	if err != nil {
		return err
	}

	eng, err := a.newEngine(ws)
	if err != nil {
		return err
	}

	inv := &invocation{
		App:      a,
		engine:   eng,
		ws:       ws,
		buildID:  opts.BuildID,
		stateDir: opts.stateDir(ws.Root),
		events:   a.openEvents(traceDir(ws.Root)),
		statuses: make(map[domain.TargetIdentity]domain.ChangeStatus),
	}
	if inv.buildID == "" {
		inv.buildID = uuid.NewString()
	}

	expandErr := inv.expandAll(ctx, targets)

	if err := inv.events.OutputTrace(inv.buildID); err != nil {
		a.logger.Warn(fmt.Sprintf("cache events of build %s were not recorded: %v", inv.buildID, err))
	}

	graph, err := buildGraph(eng.registry.Snapshot())
	if err != nil {
		return errors.Join(expandErr, err)
	}

	if err := renderGraph(a.out, graph, inv.statuses); err != nil {
		return errors.Join(expandErr, zerr.Wrap(err, "failed to render rule graph"))
	}

	return expandErr
}

// Deps prints the implicit dependencies of the given test targets, or of every
// declared test when none are given. Nothing is expanded.
func (a *App) Deps(_ context.Context, targetNames []string, opts Options) error {
	ws, err := a.configLoader.Load(opts.configPath())
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	targets, err := selectTargets(ws, targetNames)
	if err != nil {
		return err
	}

	eng, err := a.newEngine(ws)
	if err != nil {
		return err
	}

	for _, decl := range targets {
		if _, err := fmt.Fprintln(a.out, decl.Target); err != nil {
			return err
		}
		for _, dep := range eng.expander.ImplicitDeps(decl.Target, decl.Arg) {
			if _, err := fmt.Fprintf(a.out, "    %s\n", dep); err != nil {
				return err
			}
		}
	}
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	State      bool
	Traces     bool
}

// Clean removes recorded expansion state and cache event traces.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	if !options.State && !options.Traces {
		return nil
	}

	ws, err := a.configLoader.Load(Options{ConfigPath: options.ConfigPath}.configPath())
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.State {
		remove(filepath.Join(ws.Root, domain.DefaultStatePath()), "expansion state")
	}
	if options.Traces {
		remove(traceDir(ws.Root), "cache event traces")
	}

	return errs
}

// Close ends the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// engine holds the per-invocation registry and the components built on it.
type engine struct {
	registry *registry.Registry
	expander *expander.Expander
}

func (a *App) newEngine(ws *domain.Workspace) (*engine, error) {
	reg := registry.New()
	for _, rule := range ws.Rules {
		if _, err := reg.Register(rule); err != nil {
			return nil, zerr.Wrap(err, "failed to register workspace rule")
		}
	}

	enh := enhancement.New(reg, ws.Platform)
	exp := expander.New(reg, ws.Toolchain, a.fs, enh,
		expander.WithProjectRoot(ws.Root),
		expander.WithDefaultTimeout(ws.DefaultTestTimeout),
	)

	return &engine{registry: reg, expander: exp}, nil
}

// selectTargets resolves target names against the workspace declarations.
func selectTargets(ws *domain.Workspace, targetNames []string) ([]domain.TestDeclaration, error) {
	if len(targetNames) == 0 {
		if len(ws.Tests) == 0 {
			return nil, domain.ErrNoTargetsSpecified
		}
		return slices.Clone(ws.Tests), nil
	}

	seen := make(map[domain.TargetIdentity]struct{}, len(targetNames))
	decls := make([]domain.TestDeclaration, 0, len(targetNames))
	for _, name := range targetNames {
		id, err := domain.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		decl, ok := ws.Test(id)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "no test declared"), "target", name)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}
