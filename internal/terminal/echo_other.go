//go:build !linux

package terminal

// setEcho is a no-op on platforms without termios support wired up.
// The negotiation itself still succeeds; only the local echo state is
// left alone.
func setEcho(fd int, enabled bool) error { return nil }
