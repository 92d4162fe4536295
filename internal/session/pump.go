// Package session drives a single TELNET session: it multiplexes the
// local line input and the remote socket, feeds inbound chunks to the
// negotiation engine, and decides when the session is over.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"gotel/config"
	"gotel/internal/errors"
	"gotel/internal/metrics"
	"gotel/internal/telnet"
	"gotel/internal/terminal"
	"gotel/internal/transport"
	"gotel/util"
)

// State tracks the pump lifecycle.
type State int32

const (
	Connecting State = iota
	Active
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Local cancellation bytes: end-of-text (Ctrl-C) and end-of-transmission
// (Ctrl-D) on the input stream end the session.
const (
	etx = "\x03"
	eot = "\x04"
)

// Conn is the socket surface the pump drives.  transport.StatusConn
// satisfies it; tests inject fakes.
type Conn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error

	// Status returns the liveness status byte; see transport.
	Status() byte
}

// Pump owns the connection for the lifetime of a session.  It is a
// single goroutine of control: one helper feeds local lines through a
// channel, but the connection, echo state, and negotiation cursor are
// mutated only by the loop in Run.
type Pump struct {
	conn    Conn
	input   io.Reader
	output  io.Writer
	engine  *telnet.Engine
	logger  *util.Logger
	metrics *metrics.Collector

	state atomic.Int32
}

// New creates a Pump in the Connecting state.  conn must already be
// open; the pump owns it from here and releases it when Run returns.
func New(conn Conn, input io.Reader, output io.Writer, term terminal.Terminal,
	logger *util.Logger, collector *metrics.Collector) *Pump {
	return &Pump{
		conn:    conn,
		input:   input,
		output:  output,
		engine:  telnet.NewEngine(output, conn, term, logger, collector),
		logger:  logger,
		metrics: collector,
	}
}

// State returns the current lifecycle state.
func (p *Pump) State() State { return State(p.state.Load()) }

func (p *Pump) setState(s State) { p.state.Store(int32(s)) }

// Run moves bytes between the local endpoint and the remote socket
// until the user cancels, the peer closes, or ctx is done.  The
// connection is released on every exit path, exactly once.
func (p *Pump) Run(ctx context.Context) error {
	p.setState(Active)
	defer func() {
		p.conn.Close() //nolint:errcheck
		p.setState(Closed)
	}()

	lines := make(chan string)
	go p.readLines(lines)

	buf := util.GetBuf()
	defer util.PutBuf(buf)

	for p.State() == Active {
		// Local side first: cancellation and queued input.
		select {
		case <-ctx.Done():
			p.disconnect("cancelled")
			continue
		case line, ok := <-lines:
			if !ok || isCancel(line) {
				p.disconnect("local input ended")
				continue
			}
			p.send(line)
		default:
		}

		// Remote side: a bounded read doubles as the readiness wait,
		// so the poll granularity is the read deadline.
		p.conn.SetReadDeadline(time.Now().Add(config.PollInterval)) //nolint:errcheck
		n, err := p.conn.Read(*buf)
		if n > 0 {
			p.metrics.BytesReceived(int64(n))
			p.engine.Process((*buf)[:n])
			continue
		}
		if err != nil && !errors.IsTimeout(err) {
			// Transient read miss.  If the peer really went away the
			// status bits say so on the idle pass below.
			p.logger.Debug("read: %v", err)
		}
		p.idle()
	}

	p.logger.Verbose("session closed")
	return nil
}

// disconnect prints the closing line terminator and leaves the loop.
func (p *Pump) disconnect(reason string) {
	fmt.Fprintln(p.output)
	p.logger.Verbose("disconnecting: %s", reason)
	p.setState(Closing)
}

// idle is the housekeeping branch taken when neither side had data
// within the poll granularity.
func (p *Pump) idle() {
	if p.conn.Status()&transport.StatusMayRecv == 0 {
		fmt.Fprintln(p.output)
		p.logger.Verbose("peer closed the connection")
		p.setState(Closing)
	}
}

// send writes one local line to the socket, translating the local line
// ending to the network CRLF convention.  Write failures are logged
// and treated as transient; closure is detected by the idle branch.
func (p *Pump) send(line string) {
	// Scanner strips the terminator, so any embedded newlines plus the
	// trailing one all become CRLF.
	payload := strings.ReplaceAll(line, "\n", "\r\n") + "\r\n"
	n, err := p.conn.Write([]byte(payload))
	p.metrics.BytesSent(int64(n))
	if err != nil {
		p.logger.Debug("write: %v", err)
	}
}

// readLines feeds local input lines to the pump.  The channel closes
// on end of input, which the loop treats as a disconnect request.
func (p *Pump) readLines(out chan<- string) {
	scanner := bufio.NewScanner(p.input)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	close(out)
}

// isCancel reports whether a line carries an end-of-text or
// end-of-transmission control byte.
func isCancel(line string) bool {
	return strings.Contains(line, etx) || strings.Contains(line, eot)
}
