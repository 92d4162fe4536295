// Package metrics provides lightweight counters for a gotel session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime statistics for one session.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	bytesIn         atomic.Int64
	bytesOut        atomic.Int64
	negotiations    atomic.Int64
	commandsIgnored atomic.Int64

	mu        sync.RWMutex
	startTime time.Time
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── I/O counters ─────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Negotiation counters ─────────────────────────────────────────────

// NegotiationHandled records one answered IAC command sequence.
func (c *Collector) NegotiationHandled() {
	if c == nil {
		return
	}
	c.negotiations.Add(1)
}

// CommandIgnored records one unrecognized command pair skipped by
// protocol policy.
func (c *Collector) CommandIgnored() {
	if c == nil {
		return
	}
	c.commandsIgnored.Add(1)
}

// Negotiations returns the count of answered command sequences.
func (c *Collector) Negotiations() int64 {
	if c == nil {
		return 0
	}
	return c.negotiations.Load()
}

// IgnoredCommands returns the count of skipped command pairs.
func (c *Collector) IgnoredCommands() int64 {
	if c == nil {
		return 0
	}
	return c.commandsIgnored.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Uptime          string `json:"uptime"`
	BytesIn         int64  `json:"bytes_in"`
	BytesOut        int64  `json:"bytes_out"`
	Negotiations    int64  `json:"negotiations"`
	CommandsIgnored int64  `json:"commands_ignored"`
}

// Snapshot returns a copy of all current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Second).String(),
		BytesIn:         c.bytesIn.Load(),
		BytesOut:        c.bytesOut.Load(),
		Negotiations:    c.negotiations.Load(),
		CommandsIgnored: c.commandsIgnored.Load(),
	}
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
