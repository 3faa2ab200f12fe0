package tcp

import (
	"net"
	"testing"
	"time"
)

func TestNetwork_ListenAndDial(t *testing.T) {
	t.Parallel()

	network := NewNetwork()

	laddr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}
	l, err := network.ListenTCP("tcp", laddr)
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}
	defer l.Close()

	go func() {
		conn, err := network.DialTCP("tcp", nil, laddr)
		if err != nil {
			return
		}
		conn.Write([]byte("hi"))
		conn.Close()
	}()

	conn, err := l.Accept()
	if err != nil {
		t.Fatalf("Accept(): %v", err)
	}
	defer conn.Close()

	buf := make([]byte, 2)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := conn.Read(buf); err != nil {
		t.Fatalf("Read(): %v", err)
	}
	if string(buf) != "hi" {
		t.Errorf("Read() = %q, want %q", buf, "hi")
	}
}

func TestNetwork_EphemeralPort(t *testing.T) {
	t.Parallel()

	network := NewNetwork()

	l1, err := network.ListenTCP("tcp", &net.TCPAddr{Port: 0})
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}
	defer l1.Close()

	l2, err := network.ListenTCP("tcp", &net.TCPAddr{Port: 0})
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}
	defer l2.Close()

	p1 := l1.Addr().(*net.TCPAddr).Port
	p2 := l2.Addr().(*net.TCPAddr).Port
	if p1 == 0 || p2 == 0 || p1 == p2 {
		t.Errorf("ephemeral ports = %d, %d; want distinct non-zero", p1, p2)
	}
}

func TestNetwork_DialErrors(t *testing.T) {
	t.Parallel()

	network := NewNetwork()
	raddr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9001}

	if _, err := network.DialTCP("tcp", nil, raddr); err == nil {
		t.Error("DialTCP() without listener should be refused")
	}

	l, err := network.ListenTCP("tcp", raddr)
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}
	l.Close()

	if _, err := network.DialTCP("tcp", nil, raddr); err == nil {
		t.Error("DialTCP() to closed listener should be refused")
	}
}

func TestNetwork_AddressInUse(t *testing.T) {
	t.Parallel()

	network := NewNetwork()
	laddr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9002}

	l, err := network.ListenTCP("tcp", laddr)
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}
	defer l.Close()

	if _, err := network.ListenTCP("tcp", laddr); err == nil {
		t.Error("second ListenTCP() on same address should fail")
	}
}

func TestListener_CloseIdempotent(t *testing.T) {
	t.Parallel()

	network := NewNetwork()
	l, err := network.ListenTCP("tcp", &net.TCPAddr{Port: 0})
	if err != nil {
		t.Fatalf("ListenTCP(): %v", err)
	}

	if err := l.Close(); err != nil {
		t.Errorf("first Close(): %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close(): %v", err)
	}

	if _, err := l.Accept(); err == nil {
		t.Error("Accept() on closed listener should fail")
	}
}
