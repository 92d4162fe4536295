package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultTelnetPort is the standard TELNET port, used when the
	// target spec carries no (valid) port of its own.
	DefaultTelnetPort = 23

	// DefaultDialTimeout is the TCP connection timeout.
	DefaultDialTimeout = 5 * time.Second

	// PollInterval is the readiness-poll granularity of the session
	// loop.  It bounds both keystroke-to-wire latency and how long a
	// cancellation can go unnoticed.
	PollInterval = 10 * time.Millisecond

	// StatusProbeTimeout bounds the non-blocking liveness probe used
	// by the idle branch to detect peer closure.
	StatusProbeTimeout = time.Millisecond
)
