package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// nickSentinel is the literal handshake token requesting identification;
// the next line the client sends is taken as its nickname.
const nickSentinel = "NICK"

var welcomeLines = []string{
	"You are now connected to the server!",
	"Type '/quit' to exit.",
	"Type '/join <channel>' to switch channels.",
	"Type '/pm <nickname> <message>' to message one user.",
}

// Session drives one client connection from handshake to cleanup. Each
// session runs on its own goroutine and communicates with the others only
// through the hub's registry and router.
type Session struct {
	id   string
	hub  *Hub
	conn Conn
	log  zerolog.Logger

	// nick is assigned once during the handshake, before the session
	// becomes reachable through the registry, and never mutated after.
	nick string

	cleanup sync.Once
}

// NewSession wraps conn in a session. The caller runs it with Run.
func (h *Hub) NewSession(conn Conn) *Session {
	id := uuid.NewString()
	logger := h.log.With().Str("session_id", id).Str("remote", conn.RemoteAddr()).Logger()
	return &Session{id: id, hub: h, conn: conn, log: logger}
}

// Nick returns the nickname negotiated during the handshake, or the empty
// string before registration.
func (s *Session) Nick() string {
	return s.nick
}

// Run executes the session state machine and blocks until the connection is
// torn down. Cleanup is guaranteed to run exactly once on every exit path.
func (s *Session) Run(ctx context.Context) {
	if err := s.handshake(ctx); err != nil {
		s.teardown(false)
		return
	}
	s.loop(ctx)
}

// handshake requests a nickname, reserves it, and moves the client into the
// default channel. On any failure the connection never appears in a channel.
func (s *Session) handshake(ctx context.Context) error {
	if err := s.conn.WriteLine(nickSentinel); err != nil {
		return err
	}

	line, err := s.conn.ReadLine(ctx)
	if err != nil {
		return err
	}
	nick := strings.TrimSpace(line)
	if nick == "" {
		_ = s.conn.WriteLine("Invalid nickname.")
		return errors.New("empty nickname")
	}

	// nick must be visible before the session is reachable via the registry.
	s.nick = nick
	if err := s.hub.reg.Register(nick, s); err != nil {
		s.log.Info().Str("nick", nick).Msg("nickname rejected")
		_ = s.conn.WriteLine("Nickname already in use.")
		return err
	}
	s.log = s.log.With().Str("nick", nick).Logger()

	if _, err := s.hub.reg.Join(nick, s.hub.defaultChannel); err != nil {
		return err
	}
	s.hub.router.Broadcast(s.hub.defaultChannel, formatJoined(nick, s.hub.defaultChannel), nick)

	for _, l := range welcomeLines {
		if err := s.conn.WriteLine(l); err != nil {
			return err
		}
	}

	s.log.Info().Str("channel", s.hub.defaultChannel).Msg("session active")
	return nil
}

// loop reads lines until the stream terminates or the client quits.
func (s *Session) loop(ctx context.Context) {
	for {
		line, err := s.conn.ReadLine(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				s.log.Debug().Err(err).Msg("read terminated")
			}
			s.teardown(false)
			return
		}

		if err := s.hub.dispatch(s, line); err != nil {
			if errors.Is(err, errQuit) {
				s.teardown(true)
			} else {
				s.log.Debug().Err(err).Msg("session ended")
				s.teardown(false)
			}
			return
		}
	}
}

// teardown removes the session from the registry and directory before any
// notice is sent, closes the connection, and for a notified cleanup
// broadcasts the departure to the channel the client last occupied. Safe
// under concurrent triggers: only the first caller's notify flag applies.
func (s *Session) teardown(notify bool) {
	s.cleanup.Do(func() {
		channel, had := s.hub.reg.Unregister(s.nick, s)
		if had && notify {
			_ = s.conn.WriteLine("You left the chat.")
			if channel != "" {
				s.hub.router.Broadcast(channel, formatLeft(s.nick, channel), s.nick)
			}
		}
		if err := s.conn.Close(); err != nil {
			s.log.Debug().Err(err).Msg("close failed")
		}
		if had {
			s.log.Info().Str("channel", channel).Bool("notified", notify).Msg("session closed")
		}
	})
}
