package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/bwestphal/autocommit/internal/audit"
	"github.com/bwestphal/autocommit/internal/config"
	"github.com/bwestphal/autocommit/internal/engine"
	internalErrors "github.com/bwestphal/autocommit/internal/errors"
	"github.com/bwestphal/autocommit/internal/git"
	"github.com/bwestphal/autocommit/internal/hook"
	"github.com/bwestphal/autocommit/internal/lock"
	"github.com/bwestphal/autocommit/internal/logger"
)

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Options *config.Options

	// Optional components
	Logger logger.Logger
	Engine *engine.Engine

	// I/O dependencies
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
	IsRepository func(string) (bool, error)
}

// App is the hook application: one event in, one response out, exit zero.
type App struct {
	Options *config.Options
	Logger  logger.Logger
	Engine  *engine.Engine

	// I/O streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(string) (bool, error)
}

// NewDefaultApp creates an App with standard dependencies
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	opts := config.NewOptions()
	opts.VersionInfo = versionInfo
	opts.LoadFromEnvironment()

	return NewApp(AppOptions{
		Options:      opts,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		ExecLookPath: exec.LookPath,
		IsRepository: git.IsRepository,
	})
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Options == nil {
		panic("Options is required in AppOptions")
	}

	app := &App{
		Options:      opts.Options,
		Logger:       opts.Logger,
		Engine:       opts.Engine,
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
	}

	// Set defaults for nil dependencies
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}

	return app
}

// Initialize sets up components not provided during construction
func (a *App) Initialize() error {
	if err := a.Options.Finalize(); err != nil {
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Options.Debug, a.Options.LogFile, a.Options.Verbose)
	}

	if a.Engine == nil {
		store := config.NewStore(a.Options.ConfigPath)
		cfg, fellBack := store.Load()
		if fellBack {
			a.Logger.Warning("settings file at %s was missing or unreadable, defaults written", store.Path())
		}

		locker, err := lock.New(a.Options.RepoPath)
		if err != nil {
			return internalErrors.Wrap(err, "failed to initialize lock")
		}

		runner := git.NewRunner(a.Options.RepoPath, a.Logger)
		auditLog := audit.NewLog(a.Options.AuditLog)

		a.Engine = engine.New(cfg, runner, a.Logger, locker, auditLog, a.Options.TaskHistory)
	}

	return nil
}

// Run processes one hook invocation. The returned error is for tests; the
// production entry point responds on stdout and always exits zero, because a
// hook failure must never block the calling assistant.
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		a.respond(hook.NewErrorResponse(err.Error()))
		return err
	}

	if a.Options.Version {
		a.ShowVersion()
		return nil
	}

	defer func() {
		if err := a.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
		}
	}()

	if _, err := a.execLookPath("git"); err != nil {
		a.respond(hook.NewErrorResponse("git is not found in PATH"))
		return internalErrors.ErrGitOperationFailed
	}

	isRepo, err := a.isRepository(a.Options.RepoPath)
	if err != nil {
		a.Logger.Warning("failed to check if path is a git repository: %v", err)
		a.respond(hook.NewErrorResponse(err.Error()))
		return internalErrors.Wrap(internalErrors.ErrGitOperationFailed, err.Error())
	}
	if !isRepo {
		a.respond(hook.NewSkipResponse("not a git repository"))
		return internalErrors.ErrNotGitRepository
	}

	ev, err := hook.ParseEvent(a.Stdin)
	if err != nil {
		a.Logger.Warning("invalid hook event: %v", err)
		a.respond(hook.NewErrorResponse(err.Error()))
		return err
	}

	a.Logger.Info("handling %s event (tool=%q)", ev.EventType, ev.Tool.Name)

	result := a.Engine.HandleEvent(ctx, ev)
	if result.Skipped {
		a.respond(hook.NewSkipResponse(result.Reason))
		return nil
	}

	a.respond(result.Outcome)
	return nil
}

// respond writes the single JSON response for this invocation.
func (a *App) respond(v any) {
	if err := hook.WriteResponse(a.Stdout, v); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to write response: %v\n", err)
	}
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "autocommit %s (%s) built on %s\n",
		a.Options.VersionInfo.Version,
		a.Options.VersionInfo.Commit,
		a.Options.VersionInfo.Date)
}

// Close releases resources held by the App
func (a *App) Close() error {
	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
			return err
		}
	}
	return nil
}
