// Package mockserver runs a scriptable mock TCP endpoint for driving tests
// of TCP client implementations. Each expected connection is declared in
// advance as an ordered action script; the server assigns scripts to
// physical connections strictly first-come-first-served and plays each
// script to completion or failure.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/format"
	"dominicbreuker/mocktcp/pkg/log"
	"dominicbreuker/mocktcp/pkg/script"
	"dominicbreuker/mocktcp/pkg/transport"
)

// MockServer owns the listener, the FIFO of not-yet-assigned scripts, and
// the set of live connections. Once the last script is assigned, the
// listener is torn down and no further connections are accepted.
type MockServer struct {
	cfg      *config.Shared
	logger   *log.Logger
	reporter script.Reporter
	ready    *ReadySignal
	cancel   context.CancelFunc

	mu       sync.Mutex
	listener net.Listener
	scripts  []*script.Script
	conns    map[*Conn]struct{}
	closed   bool

	done     chan struct{}
	doneOnce sync.Once

	wg sync.WaitGroup
}

// Start validates cfg, binds the endpoint's listener, and begins accepting
// scripted connections. Scripts are consumed in order as connections
// arrive. A bind failure is returned as a *SetupError; nothing else fails
// Start.
func Start(cfg *config.Shared, scripts []*script.Script) (*MockServer, error) {
	if cfg == nil {
		cfg = &config.Shared{}
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &SetupError{Cause: errors.Join(errs...)}
	}

	logger := cfg.GetLogger()

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = &LogReporter{Logger: logger}
	}

	ctx, cancel := context.WithCancel(context.Background())

	l, err := transport.Listen(ctx, cfg)
	if err != nil {
		cancel()
		return nil, &SetupError{Cause: err}
	}

	host, port, err := format.SplitAddr(l.Addr().String())
	if err != nil {
		l.Close()
		cancel()
		return nil, &SetupError{Cause: fmt.Errorf("resolving bound address: %w", err)}
	}

	s := &MockServer{
		cfg:      cfg,
		logger:   logger,
		reporter: reporter,
		ready:    newReadySignal(),
		cancel:   cancel,
		listener: l,
		scripts:  scripts,
		conns:    make(map[*Conn]struct{}),
		done:     make(chan struct{}),
	}

	s.ready.resolve(host, port)
	logger.InfoMsg("Mock endpoint listening on %s, expecting %d connection(s)\n", format.Addr(host, port), len(scripts))

	if len(scripts) == 0 {
		// nothing scripted, but keep listening so that a stray
		// connection is caught as unexpected
		s.finish()
	}

	s.wg.Add(1)
	go s.acceptLoop()

	return s, nil
}

// acceptLoop assigns scripts to connections in arrival order. It exits
// when the listener goes away, either through teardown or because the last
// script was assigned.
func (s *MockServer) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.logger.VerboseMsg("accept loop finished: %s", err)
			return
		}

		s.assign(conn)
	}
}

// assign pops the next script for conn and starts its runner. With no
// script left the unexpected-connection policy applies.
func (s *MockServer) assign(nc net.Conn) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		nc.Close()
		return
	}

	if len(s.scripts) == 0 {
		s.mu.Unlock()
		s.unexpected(nc)
		return
	}

	sc := s.scripts[0]
	s.scripts = s.scripts[1:]
	last := len(s.scripts) == 0

	if s.cfg.LogFile != "" {
		captured, err := log.NewCaptureConn(nc, s.cfg.LogFile)
		if err != nil {
			s.logger.ErrorMsg("enabling wire capture to %s: %s\n", s.cfg.LogFile, err)
		} else {
			nc = captured
		}
	}

	c := newConn(nc, s.cfg.GetTimeout(), s.logger)
	s.conns[c] = struct{}{}
	s.mu.Unlock()

	s.logger.InfoMsg("New connection %s from %s\n", c.ID(), nc.RemoteAddr())

	if last {
		// all scripts assigned, stop accepting
		s.listener.Close()
	}

	r := &runner{
		conn:      c,
		script:    sc,
		logger:    s.logger,
		reporter:  s.reporter,
		onTimeout: s.cfg.OnTimeout,
		onError:   s.cfg.OnError,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		r.run()
		s.connDone(c)
	}()
}

// unexpected applies the policy for connections beyond the scripted count.
// Without an override this aborts the process: the test declared fewer
// connections than its client made.
func (s *MockServer) unexpected(nc net.Conn) {
	err := &UnexpectedConnectionError{RemoteAddr: nc.RemoteAddr().String()}
	s.logger.ErrorMsg("%s\n", err)

	if s.cfg.OnUnexpected == nil {
		exit(1)
		return
	}

	s.cfg.OnUnexpected(nc)
	nc.Close()
}

// connDone removes a finished connection and completes the server once no
// scripts and no live connections remain.
func (s *MockServer) connDone(c *Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	finished := len(s.scripts) == 0 && len(s.conns) == 0
	s.mu.Unlock()

	s.logger.InfoMsg("Connection %s finished\n", c.ID())

	if finished {
		s.finish()
	}
}

func (s *MockServer) finish() {
	s.doneOnce.Do(func() {
		close(s.done)
		if s.cfg.OnDone != nil {
			s.cfg.OnDone()
		}
	})
}

// Listening returns the one-shot signal resolving to the bound address.
func (s *MockServer) Listening() *ReadySignal {
	return s.ready
}

// ConnectAddr blocks until the listener is ready and returns the address
// clients should connect to.
func (s *MockServer) ConnectAddr() (string, int) {
	host, port, _ := s.ready.Wait(context.Background())
	return host, port
}

// ConnectHost returns the host component of ConnectAddr.
func (s *MockServer) ConnectHost() string {
	host, _ := s.ConnectAddr()
	return host
}

// ConnectPort returns the port component of ConnectAddr.
func (s *MockServer) ConnectPort() int {
	_, port := s.ConnectAddr()
	return port
}

// ConnectString returns ConnectAddr in "host:port" form.
func (s *MockServer) ConnectString() string {
	host, port := s.ConnectAddr()
	return format.Addr(host, port)
}

// Wait blocks until every script has been assigned and every connection
// has finished, or ctx ends.
func (s *MockServer) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the endpoint down: it stops listening and destroys every
// live connection, cancelling their pending reads and sleeps. It is safe
// to call multiple times.
func (s *MockServer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	conns := make([]*Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	s.listener.Close()
	s.cancel()

	for _, c := range conns {
		c.Destroy()
	}

	s.wg.Wait()
	return nil
}
