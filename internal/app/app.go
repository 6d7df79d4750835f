package app

import (
	"context"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/config"
	"github.com/vovakirdan/chatrelay/internal/core"
	transporthttp "github.com/vovakirdan/chatrelay/internal/transport/http"
	"github.com/vovakirdan/chatrelay/internal/transport/tcp"
)

// App wires together core and transport layers.
type App struct {
	cfg    config.Config
	hub    *core.Hub
	server *stdhttp.Server
	tcp    *tcp.Listener
	log    *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(cfg.DefaultChannel, logger)

	return &App{
		cfg:    cfg,
		hub:    hub,
		server: transporthttp.NewServer(hub, cfg, logger),
		tcp:    tcp.NewListener(hub, logger),
		log:    logger,
	}
}

// Run starts the TCP listener and the HTTP server and blocks until context
// cancellation or a fatal listener error.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- a.tcp.Serve(ctx, a.cfg.Addr)
	}()
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down")
		shutdownErr := a.server.Shutdown(shutdownCtx)

		for i := 0; i < 2; i++ {
			if err := <-errCh; err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
		return shutdownErr
	}
}
