package ws

import (
	"context"
	"fmt"
	"net"

	"github.com/coder/websocket"
)

// Dial connects to a WebSocket endpoint at addr and returns the upgraded
// binary stream as a net.Conn.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	url := "ws://" + addr

	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{"bin"},
	})
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial(%s): %w", url, err)
	}

	return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
}
