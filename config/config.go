// Package config defines the runtime configuration for gotel and the
// parser for the host[:port] target specification.
package config

import (
	"strconv"
	"strings"
	"time"

	"gotel/internal/errors"
)

// Config holds every tuneable for a single gotel session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Target  string // raw host[:port] positional argument
	Host    string
	Port    uint16
	Timeout time.Duration // dial timeout
	NoDNS   bool          // numeric-only, no DNS resolution

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	DryRun  bool // validate and exit without connecting
}

// ── Target-spec parser ───────────────────────────────────────────────

// ParseTarget splits a host[:port] spec at the first colon.  A missing
// or unparsable port silently falls back to the TELNET default; the
// parse itself never fails.
func ParseTarget(spec string) (host string, port uint16) {
	host, portText, found := strings.Cut(spec, ":")
	if !found {
		return host, DefaultTelnetPort
	}
	p, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return host, DefaultTelnetPort
	}
	return host, uint16(p)
}

// ApplyTarget parses cfg.Target into Host and Port.
func (c *Config) ApplyTarget() {
	c.Host, c.Port = ParseTarget(c.Target)
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.Usage("missing host")
	}
	if c.Timeout <= 0 {
		return errors.Usage("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
