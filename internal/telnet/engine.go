// Package telnet interprets IAC command sequences embedded in the
// inbound byte stream and emits the negotiation responses the client
// supports: the terminal-type subnegotiation and local echo
// suppression.
package telnet

import (
	"io"

	"gotel/internal/metrics"
	"gotel/internal/terminal"
	"gotel/util"
)

// Engine scans inbound chunks for IAC command sequences.  Bytes that
// are not part of a handled sequence go to the display sink; responses
// go back to the connection.  The engine never blocks and never fails:
// write errors are logged and the scan continues.
//
// Known limitation: a command sequence split across two reads is not
// reassembled.  An IAC with fewer than two bytes after it in the chunk
// degrades to ordinary display data.
type Engine struct {
	display io.Writer
	conn    io.Writer
	term    terminal.Terminal
	logger  *util.Logger
	metrics *metrics.Collector

	echoSuppressed bool
}

// NewEngine returns an Engine writing display data to display and
// negotiation responses to conn.
func NewEngine(display, conn io.Writer, term terminal.Terminal,
	logger *util.Logger, collector *metrics.Collector) *Engine {
	return &Engine{
		display: display,
		conn:    conn,
		term:    term,
		logger:  logger,
		metrics: collector,
	}
}

// EchoSuppressed reports whether the server currently suppresses
// local echo.
func (e *Engine) EchoSuppressed() bool { return e.echoSuppressed }

// Process runs the single-pass scan over one inbound chunk.
func (e *Engine) Process(data []byte) {
	var out []byte

	i := 0
	for i < len(data) {
		if data[i] != IAC {
			out = append(out, data[i])
			i++
			continue
		}
		if i+2 >= len(data) {
			// Truncated command: fewer than two bytes follow the
			// marker, so it cannot be interpreted.  Emit it verbatim.
			out = append(out, data[i])
			i++
			continue
		}

		ev := Classify(data[i+1], data[i+2])
		switch ev {
		case TerminalTypeQuery:
			e.respond(ev, termTypeReply())
			i += 3

		case EchoSuppressRequest:
			if !e.echoSuppressed {
				e.setEcho(false)
				e.echoSuppressed = true
			}
			e.respond(ev, []byte{IAC, DO, Echo})
			i += 3

		case EchoSuppressWithdraw:
			if e.echoSuppressed {
				e.setEcho(true)
				e.echoSuppressed = false
			}
			e.respond(ev, []byte{IAC, DONT, Echo})
			i += 3

		default:
			// Not a pair we negotiate.  No response; skip only the
			// marker so the next bytes are re-examined as data or as
			// the start of another command.
			e.metrics.CommandIgnored()
			e.logger.Debug("ignoring telnet command %d %d", data[i+1], data[i+2])
			out = append(out, data[i])
			i++
		}
	}

	if len(out) > 0 {
		if _, err := e.display.Write(out); err != nil {
			e.logger.Debug("display write: %v", err)
		}
	}
}

func (e *Engine) respond(ev Event, response []byte) {
	e.metrics.NegotiationHandled()
	e.logger.Verbose("negotiated %s", ev)
	if _, err := e.conn.Write(response); err != nil {
		e.logger.Debug("negotiation response write: %v", err)
	}
}

func (e *Engine) setEcho(enabled bool) {
	if err := e.term.SetEcho(enabled); err != nil {
		e.logger.Debug("set echo %v: %v", enabled, err)
	}
}

// termTypeReply builds IAC SB TerminalType 0 <TermType> IAC SE.
func termTypeReply() []byte {
	reply := []byte{IAC, SB, TerminalType, 0}
	reply = append(reply, TermType...)
	return append(reply, IAC, SE)
}
