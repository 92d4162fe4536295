package transport

import (
	"net"
	"testing"
	"time"
)

func tcpPair(t *testing.T) (client, server net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	client, err = net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}

	select {
	case server = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for accept")
	}
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestStatus_OpenIdle(t *testing.T) {
	client, _ := tcpPair(t)
	sc := NewStatusConn(client)

	status := sc.Status()
	if status&StatusMayRecv == 0 {
		t.Error("may-recv should be set on an idle open connection")
	}
	if status&StatusMaySend == 0 {
		t.Error("may-send should be set on an idle open connection")
	}
}

func TestStatus_PeerClosed(t *testing.T) {
	client, server := tcpPair(t)
	sc := NewStatusConn(client)

	server.Close()
	// The FIN may take a moment to land.
	deadline := time.Now().Add(2 * time.Second)
	for sc.Status()&StatusMayRecv != 0 {
		if time.Now().After(deadline) {
			t.Fatal("may-recv still set after peer close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestStatus_ProbeDoesNotConsume verifies a byte swallowed by the
// probe is handed back by the next Read.
func TestStatus_ProbeDoesNotConsume(t *testing.T) {
	client, server := tcpPair(t)
	sc := NewStatusConn(client)

	if _, err := server.Write([]byte("A")); err != nil {
		t.Fatal(err)
	}

	// Poll until the probe has seen the byte.
	deadline := time.Now().Add(2 * time.Second)
	for len(sc.peeked) == 0 {
		if sc.Status()&StatusMayRecv == 0 {
			t.Fatal("connection unexpectedly closed")
		}
		if time.Now().After(deadline) {
			t.Fatal("probe never saw the byte")
		}
	}

	buf := make([]byte, 4)
	n, err := sc.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || buf[0] != 'A' {
		t.Errorf("read %q, want %q", buf[:n], "A")
	}
}

func TestClose_ExactlyOnce(t *testing.T) {
	client, _ := tcpPair(t)
	sc := NewStatusConn(client)

	first := sc.Close()
	second := sc.Close()
	if first != second {
		t.Errorf("repeated Close should return the first result: %v vs %v", first, second)
	}
	if sc.Status() != 0 {
		t.Error("status of a closed connection should be zero")
	}
}
