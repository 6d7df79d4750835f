package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeConn is an in-memory Conn fed by tests.
type fakeConn struct {
	in     chan string
	out    chan string
	closed chan struct{}
	once   sync.Once

	failWrites atomic.Bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan string, 16),
		out:    make(chan string, 64),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadLine(ctx context.Context) (string, error) {
	select {
	case line := <-c.in:
		return line, nil
	case <-c.closed:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *fakeConn) WriteLine(text string) error {
	if c.failWrites.Load() {
		return errors.New("write refused")
	}
	select {
	case c.out <- text:
		return nil
	case <-c.closed:
		return errors.New("connection closed")
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) RemoteAddr() string { return "fake" }

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func newTestHub() *Hub {
	logger := zerolog.Nop()
	return NewHub("general", &logger)
}

// connect runs a full handshake for nick and waits until the session is
// active.
func connect(tb testing.TB, hub *Hub, nick string) *fakeConn {
	tb.Helper()

	c := newFakeConn()
	go hub.NewSession(c).Run(context.Background())

	mustLine(tb, c, nickSentinel)
	c.in <- nick
	mustLine(tb, c, "You are now connected")
	mustLine(tb, c, "message one user")
	drain(c)
	return c
}

// mustLine consumes lines from c until one contains want.
func mustLine(tb testing.TB, c *fakeConn, want string) string {
	tb.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line := <-c.out:
			if strings.Contains(line, want) {
				return line
			}
		case <-deadline:
			tb.Fatalf("expected line containing %q not received", want)
			return ""
		}
	}
}

// nextLine returns the next line received on c.
func nextLine(tb testing.TB, c *fakeConn) string {
	tb.Helper()

	select {
	case line := <-c.out:
		return line
	case <-time.After(2 * time.Second):
		tb.Fatal("expected a line, got none")
		return ""
	}
}

// mustNotLine fails if a line containing forbidden arrives within wait.
func mustNotLine(tb testing.TB, c *fakeConn, forbidden string, wait time.Duration) {
	tb.Helper()

	deadline := time.After(wait)
	for {
		select {
		case line := <-c.out:
			if strings.Contains(line, forbidden) {
				tb.Fatalf("unexpected line %q", line)
			}
		case <-deadline:
			return
		}
	}
}

// drain discards everything currently buffered on c.
func drain(c *fakeConn) {
	for {
		select {
		case <-c.out:
		default:
			return
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(tb testing.TB, cond func() bool) {
	tb.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	tb.Fatal("condition not met before deadline")
}
