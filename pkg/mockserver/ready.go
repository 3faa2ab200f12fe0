package mockserver

import (
	"context"
	"sync"
)

// ReadySignal is a write-once cell holding the endpoint's bound address.
// It is resolved exactly once, when the listener is live; any number of
// readers may block on it, before or after resolution.
type ReadySignal struct {
	resolved chan struct{}
	once     sync.Once

	host string
	port int
}

func newReadySignal() *ReadySignal {
	return &ReadySignal{resolved: make(chan struct{})}
}

// resolve publishes the bound address. Calls after the first are ignored.
func (r *ReadySignal) resolve(host string, port int) {
	r.once.Do(func() {
		r.host = host
		r.port = port
		close(r.resolved)
	})
}

// Wait blocks until the address is known or ctx ends.
func (r *ReadySignal) Wait(ctx context.Context) (string, int, error) {
	select {
	case <-r.resolved:
		return r.host, r.port, nil
	case <-ctx.Done():
		return "", 0, ctx.Err()
	}
}

// Poll reports the address without blocking. ok is false until the signal
// is resolved.
func (r *ReadySignal) Poll() (host string, port int, ok bool) {
	select {
	case <-r.resolved:
		return r.host, r.port, true
	default:
		return "", 0, false
	}
}
