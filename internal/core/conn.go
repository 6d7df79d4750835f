package core

import "context"

// Conn abstracts one client's bidirectional line stream.
// Transports (raw TCP, WebSocket) adapt their framing to this interface so
// the session logic never sees the underlying socket.
type Conn interface {
	// ReadLine blocks until the next line arrives, without its trailing
	// newline. Returns io.EOF when the peer closes the stream.
	ReadLine(ctx context.Context) (string, error)

	// WriteLine sends one newline-terminated line. Safe for concurrent use;
	// implementations serialize writers so lines never interleave.
	WriteLine(text string) error

	// Close closes the connection. Safe to call more than once.
	Close() error

	// RemoteAddr returns the remote address for logging.
	RemoteAddr() string
}
