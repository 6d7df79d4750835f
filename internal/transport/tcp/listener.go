package tcp

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/core"
)

// Listener accepts raw TCP connections and runs one core session per
// connection.
type Listener struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewListener builds a TCP listener over hub.
func NewListener(hub *core.Hub, logger *zerolog.Logger) *Listener {
	return &Listener{hub: hub, log: logger}
}

// Serve listens on addr and accepts connections until ctx is cancelled,
// then waits for in-flight sessions to finish tearing down.
func (l *Listener) Serve(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	stopAccept := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stopAccept()

	l.log.Info().Str("addr", ln.Addr().String()).Msg("tcp listener started")

	var wg sync.WaitGroup
	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				wg.Wait()
				return nil
			}
			l.log.Warn().Err(err).Msg("accept failed")
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			conn := NewConn(nc)
			// Cancellation closes the socket, which unblocks the session's
			// pending read.
			stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
			defer stop()

			l.hub.NewSession(conn).Run(ctx)
		}()
	}
}
