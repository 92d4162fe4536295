package session

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"gotel/internal/telnet"
	"gotel/internal/terminal"
	"gotel/internal/transport"
	"gotel/util"
)

// ── fakes ────────────────────────────────────────────────────────────

// probeTimeout satisfies net.Error so the pump treats it as a poll
// miss rather than a failure.
type probeTimeout struct{}

func (probeTimeout) Error() string   { return "i/o timeout" }
func (probeTimeout) Timeout() bool   { return true }
func (probeTimeout) Temporary() bool { return true }

// fakeConn is a scripted session.Conn.
type fakeConn struct {
	mu         sync.Mutex
	inbound    []byte // bytes the pump will read
	written    []byte
	status     byte
	closeCount int
}

func (c *fakeConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inbound) == 0 {
		return 0, probeTimeout{}
	}
	n := copy(p, c.inbound)
	c.inbound = c.inbound[n:]
	return n, nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCount++
	return nil
}

func (c *fakeConn) SetReadDeadline(time.Time) error { return nil }

func (c *fakeConn) Status() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *fakeConn) closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCount
}

func newTestPump(conn Conn, input io.Reader) *Pump {
	return New(conn, input, &bytes.Buffer{}, terminal.Nop{}, util.NewLogger(0), nil)
}

// blockingInput returns a reader that never yields a line.
func blockingInput(t *testing.T) io.Reader {
	t.Helper()
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })
	return r
}

// ── tests ────────────────────────────────────────────────────────────

func TestPump_StartsConnecting(t *testing.T) {
	p := newTestPump(&fakeConn{}, strings.NewReader(""))
	if got := p.State(); got != Connecting {
		t.Errorf("state = %v, want %v", got, Connecting)
	}
}

// TestPump_PeerClosureViaStatus verifies a status byte with the
// may-receive bit clear ends the session within one idle pass.
func TestPump_PeerClosureViaStatus(t *testing.T) {
	conn := &fakeConn{status: transport.StatusMaySend} // may-recv clear
	p := newTestPump(conn, blockingInput(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := p.State(); got != Closed {
		t.Errorf("state = %v, want %v", got, Closed)
	}
	if n := conn.closes(); n != 1 {
		t.Errorf("connection closed %d times, want exactly once", n)
	}
}

// TestPump_CancelledByContext covers Ctrl-C delivered as context
// cancellation.
func TestPump_CancelledByContext(t *testing.T) {
	conn := &fakeConn{status: transport.StatusMaySend | transport.StatusMayRecv}
	p := newTestPump(conn, blockingInput(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := p.State(); got != Closed {
		t.Errorf("state = %v, want %v", got, Closed)
	}
	if n := conn.closes(); n != 1 {
		t.Errorf("connection closed %d times, want exactly once", n)
	}
}

// TestPump_CancelBytes verifies end-of-text and end-of-transmission
// bytes on the input stream end the session.
func TestPump_CancelBytes(t *testing.T) {
	for _, ctrl := range []string{etx, eot} {
		conn := &fakeConn{status: transport.StatusMaySend | transport.StatusMayRecv}
		p := newTestPump(conn, strings.NewReader(ctrl+"\n"))

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := p.Run(ctx); err != nil {
			t.Fatalf("Run: %v", err)
		}
		cancel()

		if n := conn.closes(); n != 1 {
			t.Errorf("connection closed %d times, want exactly once", n)
		}
		if len(conn.written) != 0 {
			t.Errorf("cancel byte should not reach the wire, wrote %v", conn.written)
		}
	}
}

// TestPump_InputEOFDisconnects: closing local input (Ctrl-D on an
// empty line) ends the session.
func TestPump_InputEOFDisconnects(t *testing.T) {
	conn := &fakeConn{status: transport.StatusMaySend | transport.StatusMayRecv}
	p := newTestPump(conn, strings.NewReader(""))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := p.State(); got != Closed {
		t.Errorf("state = %v, want %v", got, Closed)
	}
}

// TestPump_LineTranslation verifies local lines reach the wire with
// CRLF endings before the session ends.
func TestPump_LineTranslation(t *testing.T) {
	conn := &fakeConn{status: transport.StatusMaySend | transport.StatusMayRecv}
	p := newTestPump(conn, strings.NewReader("open sesame\n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := string(conn.written); got != "open sesame\r\n" {
		t.Errorf("wire bytes = %q, want %q", got, "open sesame\r\n")
	}
}

// TestPump_EndToEnd exercises the whole loop against a real TCP
// server: negotiation reply, data display, outbound line, and
// cancellation with a single handle release.
func TestPump_EndToEnd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	serverGot := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		conn.Write([]byte{telnet.IAC, telnet.DO, telnet.TerminalType}) //nolint:errcheck
		conn.Write([]byte("Welcome\r\n"))                              //nolint:errcheck

		var got []byte
		buf := make([]byte, 256)
		conn.SetReadDeadline(time.Now().Add(5 * time.Second)) //nolint:errcheck
		for !bytes.Contains(got, []byte("hello\r\n")) {
			n, err := conn.Read(buf)
			got = append(got, buf[:n]...)
			if err != nil {
				break
			}
		}
		serverGot <- got
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}

	inR, inW := io.Pipe()
	output := &bytes.Buffer{}
	term := &recordingTerm{}
	p := New(transport.NewStatusConn(conn), inR, output, term,
		util.NewLogger(0), nil)

	if p.State() != Connecting {
		t.Fatalf("state before Run = %v, want %v", p.State(), Connecting)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if _, err := inW.Write([]byte("hello\n")); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-serverGot:
		wantReply := append([]byte{telnet.IAC, telnet.SB, telnet.TerminalType, 0},
			"XTERM-256COLOR"...)
		wantReply = append(wantReply, telnet.IAC, telnet.SE)
		if !bytes.Contains(got, wantReply) {
			t.Errorf("server missing terminal-type reply in %v", got)
		}
		if !bytes.Contains(got, []byte("hello\r\n")) {
			t.Errorf("server missing CRLF line in %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for server data")
	}

	// User disconnects.
	inW.Write([]byte("\x03\n")) //nolint:errcheck

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for pump to stop")
	}

	if p.State() != Closed {
		t.Errorf("state = %v, want %v", p.State(), Closed)
	}
	if !bytes.Contains(output.Bytes(), []byte("Welcome")) {
		t.Errorf("display output %q missing server banner", output.String())
	}
}

// recordingTerm counts echo toggles without touching a real terminal.
type recordingTerm struct {
	mu    sync.Mutex
	calls []bool
}

func (r *recordingTerm) SetEcho(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, enabled)
	return nil
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Connecting, "connecting"},
		{Active, "active"},
		{Closing, "closing"},
		{Closed, "closed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
