// Package core is the orchestration layer.  It composes the resolver,
// transport, terminal capability, and session pump into a runnable
// client and is the single place where a Config turns into wired
// components.
//
// Architecture layers (bottom → top):
//
//	transport → telnet engine → session pump → core → cmd (CLI)
package core

import "context"

// Mode represents a complete operational mode.  The TELNET client has
// exactly one, ConnectMode, but the seam keeps the CLI decoupled from
// its construction.
type Mode interface {
	Run(ctx context.Context) error
}
