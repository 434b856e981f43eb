package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"vaults-mcp/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// Run serves MCP on the configured transport until the input ends, the
// transport fails or the process receives SIGINT or SIGTERM. The backend
// client is closed before Run returns.
func (a *Application) Run(ctx context.Context) error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := a.Server()
	settings := a.Settings()
	logging.Info("Server", "Starting %s v%s (%s transport)", settings.ServerName, settings.ServerVersion, settings.Transport.Mode)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// End of input finishes the run as well
		defer cancel()
		return srv.Serve(gctx, a.stdin, a.stdout)
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Server", "Shutting down")
		return srv.Stop(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("Server", err, "Server stopped with error")
		return err
	}

	logging.Info("Server", "Server stopped")
	return nil
}
