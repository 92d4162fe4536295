// gotel - a small TELNET client with option negotiation and local echo
// control.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gotel/cmd"
	"gotel/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gotel: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}
