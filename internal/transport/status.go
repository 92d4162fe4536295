package transport

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"gotel/config"
)

// Socket state flags encoded in the liveness status byte.
const (
	StatusMaySend byte = 1 << 0
	StatusMayRecv byte = 1 << 1
)

// StatusConn wraps a net.Conn with a non-blocking liveness probe.
// Status peeks at the socket without consuming data: a byte read
// during the probe is buffered and handed back by the next Read.
//
// Close is safe to call more than once; the underlying connection is
// released exactly once.
type StatusConn struct {
	net.Conn

	peeked    []byte
	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// NewStatusConn wraps conn.
func NewStatusConn(conn net.Conn) *StatusConn {
	return &StatusConn{Conn: conn}
}

// Read drains any probe-buffered byte before touching the socket.
func (c *StatusConn) Read(p []byte) (int, error) {
	if len(c.peeked) > 0 {
		n := copy(p, c.peeked)
		c.peeked = c.peeked[n:]
		return n, nil
	}
	return c.Conn.Read(p)
}

// Status probes the socket and returns its state flags.  The probe is
// a single-byte read bounded by a short deadline: a timeout means the
// peer is simply idle, EOF means it has closed its send side (the
// may-receive bit goes clear), and any other failure clears both bits.
func (c *StatusConn) Status() byte {
	if c.closed {
		return 0
	}

	status := StatusMaySend | StatusMayRecv

	c.Conn.SetReadDeadline(time.Now().Add(config.StatusProbeTimeout)) //nolint:errcheck
	var b [1]byte
	n, err := c.Conn.Read(b[:])
	c.Conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	if n > 0 {
		c.peeked = append(c.peeked, b[:n]...)
	}
	if err == nil {
		return status
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return status
	}
	status &^= StatusMayRecv
	if !errors.Is(err, io.EOF) {
		status &^= StatusMaySend
	}
	return status
}

// Close releases the connection.  Later calls return the first result.
func (c *StatusConn) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		c.closeErr = c.Conn.Close()
	})
	return c.closeErr
}
