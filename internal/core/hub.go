package core

import "github.com/rs/zerolog"

// Hub wires the registry and router together and constructs sessions for
// the transports. It carries no per-client state of its own.
type Hub struct {
	reg            *Registry
	router         *Router
	defaultChannel string
	log            *zerolog.Logger
}

// NewHub creates a hub whose freshly registered clients start in
// defaultChannel.
func NewHub(defaultChannel string, logger *zerolog.Logger) *Hub {
	reg := NewRegistry()
	return &Hub{
		reg:            reg,
		router:         NewRouter(reg, logger),
		defaultChannel: defaultChannel,
		log:            logger,
	}
}

// Registry exposes the shared registry, mainly for diagnostics.
func (h *Hub) Registry() *Registry {
	return h.reg
}
