// Package cmd wires up the CLI flags and dispatches to the client core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"gotel/config"
	"gotel/internal/core"
	"gotel/internal/errors"
	"gotel/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gotel/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs a client session.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{Timeout: config.DefaultDialTimeout}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gotel", flag.ContinueOnError)

	var timeoutSec float64
	fs.Float64VarP(&timeoutSec, "timeout", "t", cfg.Timeout.Seconds(),
		"Connection timeout in seconds")
	fs.BoolVarP(&cfg.NoDNS, "no-dns", "n", cfg.NoDNS,
		"Numeric-only, no DNS resolution")
	// Counted separately: CountVarP zeroes its target at registration,
	// which would discard a GOTEL_VERBOSE baseline.
	var verboseFlags int
	fs.CountVarP(&verboseFlags, "verbose", "v",
		"Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false,
		"Validate arguments and exit without connecting")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return &errors.UsageError{Message: err.Error()}
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gotel %s\n", version)
		return nil
	}

	cfg.Timeout = time.Duration(timeoutSec * float64(time.Second))
	cfg.Verbose += verboseFlags

	// ── positional argument ──────────────────────────────────────
	switch remaining := fs.Args(); len(remaining) {
	case 0:
		return &errors.UsageError{
			Message: "missing host",
			Hint:    "usage: gotel [options] host[:port]",
		}
	case 1:
		cfg.Target = remaining[0]
	default:
		return errors.Usage("too many arguments")
	}
	cfg.ApplyTarget()

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Printf("gotel: would connect to %s port %d (timeout %s)\n",
			cfg.Host, cfg.Port, cfg.Timeout)
		return nil
	}

	// Level 1 is normal; each -v raises it, so connect/negotiation
	// diagnostics appear from the first -v.
	logger := util.NewLogger(cfg.Verbose + 1)

	return core.Build(cfg, logger).Run(ctx)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gotel – TELNET client v%s

Connects to a remote host, answers TELNET option negotiation, and
relays bytes between the local terminal and the connection.

Usage:
  gotel [options] <host[:port]>               Connect (port defaults to 23)

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  gotel towel.blinkenlights.nl                Connect on port 23
  gotel example.com:2323                      Explicit port
  gotel -v 192.168.1.10                       IP literal, verbose
  gotel -t 10 -n 10.0.0.5:8023                Numeric only, 10s timeout
`)
}
