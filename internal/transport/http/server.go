package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/config"
	"github.com/vovakirdan/chatrelay/internal/core"
)

// NewServer builds the HTTP server hosting the WebSocket bridge and a
// health endpoint.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	mux := stdhttp.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/ws", NewWSHandler(hub, logger))

	return &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	_, _ = fmt.Fprint(w, "ok")
}
