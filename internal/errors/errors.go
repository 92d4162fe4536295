// Package errors provides domain-specific error types for gotel.
//
// Every failure a user can see is one of the types below.  They carry
// structured context (host, address, underlying cause) and map onto
// process exit codes, so the CLI prints exactly one diagnostic line
// and never a stack trace.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrClosed    = errors.New("connection closed by peer")
	ErrCancelled = errors.New("session cancelled")
)

// ── Structured error types ───────────────────────────────────────────

// UsageError reports bad or missing command-line arguments.
type UsageError struct {
	Message string
	Hint    string // suggestion for the user (optional)
}

func (e *UsageError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ResolveError reports a failed hostname lookup.
type ResolveError struct {
	Host string
	Err  error // underlying resolver error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve host %q: %v", e.Host, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// AddressError reports a malformed IP literal.
type AddressError struct {
	Text string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address format %q", e.Text)
}

// ConnectError reports a failed socket open or connect.  Connect
// failures are terminal for the invocation and never retried.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Usage creates a UsageError from a format string.
func Usage(format string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// WrapResolve creates a ResolveError.
func WrapResolve(host string, err error) *ResolveError {
	return &ResolveError{Host: host, Err: err}
}

// WrapConnect creates a ConnectError.
func WrapConnect(addr string, err error) *ConnectError {
	return &ConnectError{Addr: addr, Err: err}
}

// ── Exit codes ───────────────────────────────────────────────────────

// Exit codes reported to the shell.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to a process exit code: nil → 0, usage
// errors → 2, everything else → 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}

// ── Classification helpers ───────────────────────────────────────────

// IsTimeout reports whether err is a network timeout.  The session
// loop uses short read deadlines as its readiness poll, so timeouts
// there mean "no data this iteration", not failure.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use gotel/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
