package tcp

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
)

func TestConnReadsLines(t *testing.T) {
	left, right := net.Pipe()
	defer left.Close()

	go func() {
		_, _ = right.Write([]byte("hello\nworld\r\n"))
		right.Close()
	}()

	c := NewConn(left)
	ctx := context.Background()

	if line, err := c.ReadLine(ctx); err != nil || line != "hello" {
		t.Fatalf("first line = (%q, %v)", line, err)
	}
	if line, err := c.ReadLine(ctx); err != nil || line != "world" {
		t.Fatalf("second line = (%q, %v)", line, err)
	}
	if _, err := c.ReadLine(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestConnDeliversFinalUnterminatedLine(t *testing.T) {
	left, right := net.Pipe()
	defer left.Close()

	go func() {
		_, _ = right.Write([]byte("partial"))
		right.Close()
	}()

	c := NewConn(left)
	if line, err := c.ReadLine(context.Background()); err != nil || line != "partial" {
		t.Fatalf("final line = (%q, %v)", line, err)
	}
}

func TestConnWriteLineTerminates(t *testing.T) {
	left, right := net.Pipe()
	defer right.Close()

	c := NewConn(left)
	go func() {
		if err := c.WriteLine("ping"); err != nil {
			t.Errorf("write: %v", err)
		}
		c.Close()
	}()

	got, err := io.ReadAll(right)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "ping\n" {
		t.Fatalf("wire bytes = %q", got)
	}
}

func TestConnCloseIsIdempotent(t *testing.T) {
	left, right := net.Pipe()
	defer right.Close()

	c := NewConn(left)
	if err := c.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
