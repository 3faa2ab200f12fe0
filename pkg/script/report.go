package script

import "sync"

// Reporter is the assertion boundary for receive-and-verify actions. Every
// recv/packrecv check is reported here, pass or fail, and the script keeps
// running either way: a mismatch is a failed check, not a connection error.
// For pack actions both strings are uppercase hex; otherwise they are the
// raw bytes.
type Reporter interface {
	Report(actual, expected, label string)
}

// TB is the subset of testing.TB the TestReporter needs. It is declared
// structurally so this package does not import testing.
type TB interface {
	Helper()
	Errorf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// TestReporter forwards checks to a Go test. Mismatches become non-fatal
// test errors, so one run can surface several independent failures.
type TestReporter struct {
	T TB
}

// Report implements Reporter.
func (r *TestReporter) Report(actual, expected, label string) {
	r.T.Helper()

	if actual != expected {
		r.T.Errorf("check %q: got %q, want %q", label, actual, expected)
		return
	}
	r.T.Logf("check %q: ok", label)
}

// Check is one recorded verification outcome.
type Check struct {
	Actual   string
	Expected string
	Label    string
	Pass     bool
}

// RecordingReporter captures every check for later inspection. It is safe
// for concurrent use by multiple connections.
type RecordingReporter struct {
	mu     sync.Mutex
	checks []Check
}

// Report implements Reporter.
func (r *RecordingReporter) Report(actual, expected, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checks = append(r.checks, Check{
		Actual:   actual,
		Expected: expected,
		Label:    label,
		Pass:     actual == expected,
	})
}

// Checks returns a copy of all checks recorded so far.
func (r *RecordingReporter) Checks() []Check {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}
