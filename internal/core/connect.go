package core

import (
	"context"
	"io"
	"net"
	"os"
	"strconv"

	"gotel/config"
	"gotel/internal/errors"
	"gotel/internal/metrics"
	"gotel/internal/resolver"
	"gotel/internal/session"
	"gotel/internal/terminal"
	"gotel/internal/transport"
	"gotel/util"
)

// ConnectMode resolves the target, dials it, and hands the connection
// to a session pump.
type ConnectMode struct {
	Dialer   transport.Dialer
	Resolver *resolver.Resolver
	Host     string
	Port     uint16
	Logger   *util.Logger
	Metrics  *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer

	// Term defaults to the local terminal when nil.
	Term terminal.Terminal
}

// Build constructs a ConnectMode from the given configuration.
func Build(cfg *config.Config, logger *util.Logger) *ConnectMode {
	res := resolver.New(logger)
	res.NoDNS = cfg.NoDNS

	return &ConnectMode{
		Dialer:   &transport.TCPDialer{Timeout: cfg.Timeout},
		Resolver: res,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Logger:   logger,
		Metrics:  metrics.New(),
	}
}

func (m *ConnectMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *ConnectMode) term() terminal.Terminal {
	if m.Term != nil {
		return m.Term
	}
	return terminal.NewLocal()
}

// Run resolves and dials the target, then pumps the session until it
// ends.  A failed connect is fatal and never retried; the connection,
// once open, is released by the pump on every exit path.
func (m *ConnectMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()

	ip, err := m.Resolver.Resolve(ctx, m.Host)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(m.Port)))
	m.Logger.Verbose("connecting to %s", addr)

	conn, err := m.Dialer.Dial(ctx, "tcp", addr)
	if err != nil {
		return errors.WrapConnect(addr, err)
	}
	m.Logger.Verbose("connected to %s", conn.RemoteAddr())

	pump := session.New(transport.NewStatusConn(conn),
		m.stdin(), m.stdout(), m.term(), m.Logger, m.Metrics)
	err = pump.Run(ctx)

	m.Logger.Debug("session stats:\n%s", m.Metrics.JSON())
	return err
}
