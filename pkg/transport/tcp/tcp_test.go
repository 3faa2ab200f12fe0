package tcp

import (
	"net"
	"testing"
	"time"

	mocks_tcp "dominicbreuker/mocktcp/mocks/tcp"
	"dominicbreuker/mocktcp/pkg/config"
)

func TestListenAndDial(t *testing.T) {
	t.Parallel()

	network := mocks_tcp.NewNetwork()
	deps := &config.Dependencies{
		TCPDialer:   network.DialTCP,
		TCPListener: network.ListenTCP,
	}

	l, err := NewListener("127.0.0.1:8200", deps)
	if err != nil {
		t.Fatalf("NewListener(): %v", err)
	}
	defer l.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	conn, err := Dial("127.0.0.1:8200", deps)
	if err != nil {
		t.Fatalf("Dial(): %v", err)
	}
	defer conn.Close()

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(time.Second):
		t.Fatal("listener did not accept the dialed connection")
	}
	defer server.Close()

	go conn.Write([]byte("hi"))

	buf := make([]byte, 2)
	server.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := server.Read(buf); err != nil {
		t.Fatalf("server Read(): %v", err)
	}
	if string(buf) != "hi" {
		t.Errorf("server received %q, want %q", buf, "hi")
	}
}

func TestDial_Refused(t *testing.T) {
	t.Parallel()

	network := mocks_tcp.NewNetwork()
	deps := &config.Dependencies{
		TCPDialer:   network.DialTCP,
		TCPListener: network.ListenTCP,
	}

	if conn, err := Dial("127.0.0.1:8299", deps); err == nil {
		conn.Close()
		t.Fatal("Dial() to closed port succeeded, want error")
	}
}

func TestNewListener_BadAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewListener("not an address", nil); err == nil {
		t.Fatal("NewListener() on garbage address succeeded, want error")
	}
}
