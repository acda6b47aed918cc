package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bwestphal/autocommit/internal/config"
	"github.com/bwestphal/autocommit/internal/hook"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	versionInfo := config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	app := NewDefaultApp(versionInfo)

	defer func() {
		// Last-resort boundary: any panic still produces a skip response and
		// a zero exit so the calling assistant is never blocked.
		if r := recover(); r != nil {
			_ = hook.WriteResponse(app.Stdout, hook.NewErrorResponse(fmt.Sprintf("internal error: %v", r)))
			app.exit(0)
		}
	}()

	if err := app.Options.ParseFlags(); err != nil {
		_ = hook.WriteResponse(app.Stdout, hook.NewErrorResponse(err.Error()))
		app.exit(0)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	// Run's error has already been reported through the JSON response; the
	// exit status stays zero on every path.
	_ = app.Run(ctx)
	app.exit(0)
}
