// Package script models the scripted behavior of one expected connection:
// an ordered list of actions (send, receive-and-verify, sleep, invoke) that
// a mock endpoint plays back against a live byte stream.
package script

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"time"
)

// Kind identifies the type of a scripted action.
type Kind string

// Action kinds. The pack variants are hex-encoded conveniences of their
// raw-bytes counterparts and behave identically on the wire.
const (
	KindSend     Kind = "send"
	KindPackSend Kind = "packsend"
	KindRecv     Kind = "recv"
	KindPackRecv Kind = "packrecv"
	KindSleep    Kind = "sleep"
	KindCode     Kind = "code"
)

// InvokeFunc is a test-side callback run synchronously between two actions.
// It receives the live connection and the action's label. It must not block
// indefinitely; the script does not advance until it returns.
type InvokeFunc func(conn net.Conn, label string)

// Action is one scripted step. Which fields are meaningful depends on Kind:
// Payload for send variants, Expected for recv variants, Duration for sleep,
// Callback for code.
type Action struct {
	Kind     Kind
	Payload  []byte
	Expected []byte
	Duration time.Duration
	Callback InvokeFunc
	Label    string
}

// Send writes payload to the stream and advances immediately.
func Send(payload []byte, label string) Action {
	return Action{Kind: KindSend, Payload: payload, Label: label}
}

// Recv reads exactly len(expected) bytes from the stream, verifies them
// byte-for-byte against expected, and advances regardless of the outcome.
func Recv(expected []byte, label string) Action {
	return Action{Kind: KindRecv, Expected: expected, Label: label}
}

// PackSend is Send with the payload given as a whitespace-insensitive hex
// string. It panics on malformed hex: the script is a literal part of the
// test, so bad hex is a defect in the test itself.
func PackSend(hexPayload, label string) Action {
	payload, err := DecodeHex(hexPayload)
	if err != nil {
		panic(fmt.Sprintf("script.PackSend(%q): %s", hexPayload, err))
	}
	return Action{Kind: KindPackSend, Payload: payload, Label: label}
}

// PackRecv is Recv with the expectation given as a whitespace-insensitive
// hex string. Mismatches are reported in uppercase hex so diffs of binary
// data stay readable. It panics on malformed hex like PackSend.
func PackRecv(hexExpected, label string) Action {
	expected, err := DecodeHex(hexExpected)
	if err != nil {
		panic(fmt.Sprintf("script.PackRecv(%q): %s", hexExpected, err))
	}
	return Action{Kind: KindPackRecv, Expected: expected, Label: label}
}

// Sleep pauses this connection's script for d. Other connections are not
// affected.
func Sleep(d time.Duration, label string) Action {
	return Action{Kind: KindSleep, Duration: d, Label: label}
}

// Invoke calls fn synchronously and advances when it returns.
func Invoke(fn InvokeFunc, label string) Action {
	return Action{Kind: KindCode, Callback: fn, Label: label}
}

// DecodeHex decodes a hex string into raw bytes after stripping all
// whitespace, so scripts may format long payloads across lines.
func DecodeHex(s string) ([]byte, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)

	b, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, fmt.Errorf("hex.DecodeString(%s): %w", stripped, err)
	}
	return b, nil
}

// HexString renders b the way pack actions report it: uppercase hex without
// separators.
func HexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Script is the ordered, mutable action queue for one expected connection.
// It is consumed strictly front-to-back and owned exclusively by the runner
// of the connection it is assigned to, so it needs no locking.
type Script struct {
	actions []Action
}

// New builds a Script from actions in declaration order.
func New(actions ...Action) *Script {
	return &Script{actions: actions}
}

// Next pops the front action. It reports false once the script is exhausted.
func (s *Script) Next() (Action, bool) {
	if len(s.actions) == 0 {
		return Action{}, false
	}

	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, true
}

// Len returns the number of remaining actions.
func (s *Script) Len() int {
	return len(s.actions)
}
