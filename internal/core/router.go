package core

import "github.com/rs/zerolog"

// Router fans encoded lines out to recipient sessions. It snapshots
// membership under the registry's lock, then performs every write after the
// lock is released, so one stalled recipient cannot block registry and
// directory operations for the rest of the server.
type Router struct {
	reg *Registry
	log *zerolog.Logger
}

// NewRouter builds a router over reg.
func NewRouter(reg *Registry, logger *zerolog.Logger) *Router {
	return &Router{reg: reg, log: logger}
}

// Broadcast delivers line to every member of channel except exclude.
// Membership changes after the snapshot do not affect this delivery.
// Delivery is best effort per recipient: a failed write tears that
// recipient's session down asynchronously and the remaining recipients
// still receive the line.
func (rt *Router) Broadcast(channel, line, exclude string) {
	for _, s := range rt.reg.Members(channel) {
		if s.Nick() == exclude {
			continue
		}
		if err := s.conn.WriteLine(line); err != nil {
			rt.log.Warn().Err(err).Str("nick", s.Nick()).Str("channel", channel).Msg("broadcast write failed")
			go s.teardown(false)
		}
	}
}

// Direct delivers line to exactly one nickname. Returns ErrTargetNotFound
// when no session holds target; a write failure is the recipient's problem
// (its session is torn down) and is not reported to the caller.
func (rt *Router) Direct(target, line string) error {
	s, ok := rt.reg.Lookup(target)
	if !ok {
		return ErrTargetNotFound
	}
	if err := s.conn.WriteLine(line); err != nil {
		rt.log.Warn().Err(err).Str("nick", target).Msg("direct write failed")
		go s.teardown(false)
	}
	return nil
}
