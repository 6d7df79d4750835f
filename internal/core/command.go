package core

import (
	"errors"
	"fmt"
	"strings"
)

// commandMarker prefixes in-band commands.
const commandMarker = "/"

// dispatch routes one decoded line from s. Lines are trimmed first; a line
// that is empty after trimming is dropped rather than relayed. Returns
// errQuit when the client asked to terminate, or the write error from the
// sender's own connection.
func (h *Hub) dispatch(s *Session, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, commandMarker) {
		channel, ok := h.reg.CurrentChannel(s.nick)
		if !ok {
			return ErrNotRegistered
		}
		h.log.Debug().Str("nick", s.nick).Str("channel", channel).Msg("chat message")
		h.router.Broadcast(channel, formatChat(s.nick, line), s.nick)
		return nil
	}

	name, arg, rest := splitCommand(line)
	switch name {
	case "/quit":
		return errQuit
	case "/join":
		return h.handleJoin(s, arg)
	case "/pm":
		return h.handlePrivate(s, arg, rest)
	default:
		return s.conn.WriteLine("Unknown command.")
	}
}

// splitCommand breaks a command line into at most three tokens: the command
// name, its first argument, and the remainder as a single argument.
func splitCommand(line string) (name, arg, rest string) {
	parts := strings.SplitN(line, " ", 3)
	name = parts[0]
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		rest = strings.TrimSpace(parts[2])
	}
	return name, arg, rest
}

func (h *Hub) handleJoin(s *Session, target string) error {
	if target == "" {
		return s.conn.WriteLine("Usage: /join <channel>")
	}

	prev, err := h.reg.Join(s.nick, target)
	switch {
	case errors.Is(err, ErrAlreadyInChannel):
		return s.conn.WriteLine(fmt.Sprintf("You are already in channel %s.", target))
	case err != nil:
		return err
	}

	h.log.Info().Str("nick", s.nick).Str("from", prev).Str("to", target).Msg("channel switch")
	if prev != "" {
		h.router.Broadcast(prev, formatLeft(s.nick, prev), s.nick)
	}
	h.router.Broadcast(target, formatJoined(s.nick, target), s.nick)
	return s.conn.WriteLine(fmt.Sprintf("You have joined channel %s.", target))
}

func (h *Hub) handlePrivate(s *Session, target, text string) error {
	if target == "" || text == "" {
		return s.conn.WriteLine("Usage: /pm <nickname> <message>")
	}

	if err := h.router.Direct(target, formatPrivateFrom(s.nick, text)); err != nil {
		return s.conn.WriteLine(fmt.Sprintf("User %s not found.", target))
	}
	return s.conn.WriteLine(formatPrivateTo(target, text))
}
