package tcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
)

// Conn adapts a net.Conn to the core line protocol.
type Conn struct {
	nc net.Conn
	r  *bufio.Reader

	wmu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps nc with buffered line reading.
func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc, r: bufio.NewReader(nc)}
}

// ReadLine returns the next line without its newline terminator. A final
// unterminated line before EOF is still delivered.
func (c *Conn) ReadLine(_ context.Context) (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if line != "" && errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine sends one newline-terminated line. The mutex keeps concurrent
// writers (the session's own goroutine and the router) from interleaving.
func (c *Conn) WriteLine(text string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	_, err := c.nc.Write([]byte(text + "\n"))
	return err
}

// Close closes the underlying socket. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() string {
	return c.nc.RemoteAddr().String()
}
