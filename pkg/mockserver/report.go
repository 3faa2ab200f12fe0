package mockserver

import "dominicbreuker/mocktcp/pkg/log"

// LogReporter is the default assertion boundary: check outcomes go to the
// endpoint's logger. Tests wanting real assertions inject a
// script.TestReporter or script.RecordingReporter instead.
type LogReporter struct {
	Logger *log.Logger
}

// Report implements script.Reporter.
func (r *LogReporter) Report(actual, expected, label string) {
	if actual == expected {
		r.Logger.InfoMsg("check ok: %s\n", label)
		return
	}
	r.Logger.ErrorMsg("check failed: %s: got %q, want %q\n", label, actual, expected)
}
