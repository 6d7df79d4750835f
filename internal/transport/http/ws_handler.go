package http

import (
	"context"
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/core"
)

// WSHandler upgrades HTTP connections and bridges them to core sessions.
// Each text frame carries exactly one protocol line, so a WebSocket client
// speaks the same handshake and commands as a raw TCP one.
type WSHandler struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}

	ctx := r.Context()
	wc := &wsConn{ctx: ctx, conn: conn, remote: r.RemoteAddr}
	h.hub.NewSession(wc).Run(ctx)
}

// wsConn adapts a WebSocket connection to core.Conn.
type wsConn struct {
	ctx    context.Context
	conn   *websocket.Conn
	remote string
}

func (c *wsConn) ReadLine(ctx context.Context) (string, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return "", io.EOF
		}
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *wsConn) WriteLine(text string) error {
	return c.conn.Write(c.ctx, websocket.MessageText, []byte(text))
}

func (c *wsConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "closing")
}

func (c *wsConn) RemoteAddr() string {
	return c.remote
}
