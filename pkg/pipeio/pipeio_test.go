package pipeio

import (
	"net"
	"testing"
	"time"
)

func TestPipe_MovesBytesBothWays(t *testing.T) {
	t.Parallel()

	left1, left2 := net.Pipe()
	right1, right2 := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Pipe(left2, right1, func(err error) {})
	}()

	go left1.Write([]byte("to the right"))
	buf := make([]byte, 12)
	right2.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := right2.Read(buf); err != nil {
		t.Fatalf("right Read(): %v", err)
	}
	if string(buf) != "to the right" {
		t.Errorf("right side received %q, want %q", buf, "to the right")
	}

	go right2.Write([]byte("to the left"))
	buf = make([]byte, 11)
	left1.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := left1.Read(buf); err != nil {
		t.Fatalf("left Read(): %v", err)
	}
	if string(buf) != "to the left" {
		t.Errorf("left side received %q, want %q", buf, "to the left")
	}

	// ending one side ends the pipe and closes both
	left1.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pipe() did not return after one side closed")
	}

	if _, err := right2.Read(make([]byte, 1)); err == nil {
		t.Error("far side still open after Pipe() returned")
	}
}
