package mockserver

import (
	"errors"
	"net"
	"os"

	"dominicbreuker/mocktcp/pkg/log"
	"dominicbreuker/mocktcp/pkg/script"
)

// exit is swapped out in tests of the fatal policies.
var exit = os.Exit

// runner walks one connection's script against its live stream. Actions
// execute strictly in declaration order; the next action starts only once
// the current one completed. The runner owns the script exclusively, so no
// locking is needed around the queue.
type runner struct {
	conn   *Conn
	script *script.Script
	logger *log.Logger

	reporter  script.Reporter
	onTimeout func(conn net.Conn)
	onError   func(conn net.Conn, err error)
}

// run drives the script to its terminal state: a graceful shutdown when
// the queue is exhausted, or a destroyed connection on stream error or
// timeout. Actions remaining after a failure never execute.
func (r *runner) run() {
	for {
		act, ok := r.script.Next()
		if !ok {
			r.logger.VerboseMsg("connection %s: script exhausted, shutting down", r.conn.ID())
			r.conn.shutdown()
			return
		}

		if !r.execute(act) {
			return
		}
	}
}

// execute performs one action. It reports false when the connection is
// finished, which terminates the script.
func (r *runner) execute(act script.Action) bool {
	r.logger.VerboseMsg("connection %s: %s %q", r.conn.ID(), act.Kind, act.Label)

	switch act.Kind {
	case script.KindSend, script.KindPackSend:
		if err := r.conn.write(act.Payload); err != nil {
			r.fail("send", act, err)
			return false
		}

	case script.KindRecv, script.KindPackRecv:
		actual, err := r.conn.readExact(len(act.Expected))
		if err != nil {
			r.fail("recv", act, err)
			return false
		}
		r.report(act, actual)

	case script.KindSleep:
		if !r.conn.sleep(act.Duration) {
			// destroyed mid-pause, nothing left to do
			return false
		}

	case script.KindCode:
		act.Callback(r.conn, act.Label)
	}

	return true
}

// report hands the outcome of a receive check to the assertion boundary.
// Pack actions are reported in uppercase hex so binary diffs stay
// readable; either way the script continues regardless of the result.
func (r *runner) report(act script.Action, actual []byte) {
	actualStr, expectedStr := string(actual), string(act.Expected)
	if act.Kind == script.KindPackRecv {
		actualStr, expectedStr = script.HexString(actual), script.HexString(act.Expected)
	}

	r.reporter.Report(actualStr, expectedStr, act.Label)
}

// fail applies the failure policy for an I/O error: timeouts go to the
// timeout policy (fatal unless overridden), everything else is a
// connection-local stream error. The connection is destroyed either way
// and no retry is attempted.
func (r *runner) fail(op string, act script.Action, err error) {
	if r.conn.destroyed() || errors.Is(err, net.ErrClosed) {
		// server teardown got here first, not a failure of the script
		return
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		terr := &TimeoutError{Timeout: r.conn.idle, Label: act.Label}
		if r.onTimeout == nil {
			r.logger.ErrorMsg("connection %s: %s\n", r.conn.ID(), terr)
			exit(1)
			return
		}
		r.logger.VerboseMsg("connection %s: %s", r.conn.ID(), terr)
		r.onTimeout(r.conn)
		r.conn.Destroy()
		return
	}

	serr := &StreamError{Op: op, Label: act.Label, Cause: err}
	r.logger.ErrorMsg("connection %s: %s\n", r.conn.ID(), serr)
	if r.onError != nil {
		r.onError(r.conn, serr)
	}
	r.conn.Destroy()
}
