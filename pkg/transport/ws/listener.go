// Package ws serves the mock endpoint over WebSocket. Accepted upgrades
// are exposed as net.Conn binary streams, so scripts behave exactly as
// they do over raw TCP.
package ws

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Listener accepts WebSocket connections and hands them out as net.Conn
// values. It implements net.Listener.
type Listener struct {
	nl  net.Listener
	srv *http.Server

	conns chan net.Conn

	closed    chan struct{}
	closeOnce sync.Once
}

// NewListener binds a WebSocket listener on addr. The HTTP server serving
// the upgrades is torn down when the listener is closed or ctx ends.
func NewListener(ctx context.Context, addr string) (*Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	nl, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("net.ListenTCP(tcp, %s): %w", addr, err)
	}

	l := &Listener{
		nl:     nl,
		conns:  make(chan net.Conn),
		closed: make(chan struct{}),
	}

	l.srv = &http.Server{
		Handler:           http.HandlerFunc(l.upgrade),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go l.srv.Serve(nl)

	go func() {
		select {
		case <-ctx.Done():
			l.Close()
		case <-l.closed:
		}
	}()

	return l, nil
}

// upgrade turns one HTTP request into a WebSocket byte stream and blocks
// until that stream is closed, since the hijacked connection lives only as
// long as this handler.
func (l *Listener) upgrade(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols: []string{"bin"},
	})
	if err != nil {
		return
	}

	nc := websocket.NetConn(context.Background(), c, websocket.MessageBinary)
	conn := &wsConn{Conn: nc, done: make(chan struct{})}

	select {
	case l.conns <- conn:
		<-conn.done
	case <-l.closed:
		nc.Close()
	}
}

// Accept waits for the next upgraded connection.
func (l *Listener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.conns:
		return conn, nil
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

// Close stops accepting and tears down the HTTP server. It is idempotent.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.srv.Close()
	})
	return err
}

// Addr returns the bound TCP address.
func (l *Listener) Addr() net.Addr {
	return l.nl.Addr()
}

// wsConn signals its upgrade handler when the stream is done.
type wsConn struct {
	net.Conn

	done     chan struct{}
	doneOnce sync.Once
}

func (c *wsConn) Close() error {
	err := c.Conn.Close()
	c.doneOnce.Do(func() { close(c.done) })
	return err
}
