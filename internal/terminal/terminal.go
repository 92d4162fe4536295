// Package terminal controls local character echo.  The session pump
// receives echo toggling as an explicit capability rather than a
// process-wide global, so it can be driven with a fake in tests.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Terminal toggles local echo of typed characters.
type Terminal interface {
	// SetEcho enables or disables echo.  Toggling is idempotent.
	SetEcho(enabled bool) error
}

// Nop is a Terminal for non-interactive input (pipes, tests).
type Nop struct{}

func (Nop) SetEcho(bool) error { return nil }

// Local controls echo on the process's standard input.  When stdin is
// not a terminal every call is a no-op.
type Local struct {
	fd   int
	echo bool // last state applied
}

// NewLocal returns a Local bound to stdin, which starts with echo on.
func NewLocal() *Local {
	return &Local{fd: int(os.Stdin.Fd()), echo: true}
}

// SetEcho flips the terminal echo flag, leaving line buffering and
// signal handling untouched.
func (l *Local) SetEcho(enabled bool) error {
	if !term.IsTerminal(l.fd) {
		return nil
	}
	if l.echo == enabled {
		return nil
	}
	if err := setEcho(l.fd, enabled); err != nil {
		return err
	}
	l.echo = enabled
	return nil
}
