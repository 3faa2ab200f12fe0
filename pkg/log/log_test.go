package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, f func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe(): %v", err)
	}
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestErrorMsg(t *testing.T) {
	output := captureStderr(t, func() {
		ErrorMsg("socket gone: %s\n", "reset")
	})

	if !strings.Contains(output, "socket gone: reset") {
		t.Errorf("ErrorMsg() output does not contain expected text: %q", output)
	}
}

func TestInfoMsg(t *testing.T) {
	output := captureStderr(t, func() {
		InfoMsg("listening on %s\n", "127.0.0.1:0")
	})

	if !strings.Contains(output, "listening on 127.0.0.1:0") {
		t.Errorf("InfoMsg() output does not contain expected text: %q", output)
	}
}

func TestLogger_VerboseMsg(t *testing.T) {
	tests := []struct {
		name    string
		logger  *Logger
		wantOut bool
	}{
		{"verbose logger", NewLogger(true), true},
		{"quiet logger", NewLogger(false), false},
		{"nil logger", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStderr(t, func() {
				tt.logger.VerboseMsg("action %d done", 3)
			})

			if got := strings.Contains(output, "action 3 done"); got != tt.wantOut {
				t.Errorf("VerboseMsg() output = %q, want output: %v", output, tt.wantOut)
			}
		})
	}
}
