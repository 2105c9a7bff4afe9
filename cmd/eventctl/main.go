// Command eventctl manages persisted event bindings, and triggers events against a set of built-in handlers.
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/eventx/cli"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, &cli.UsageError{}) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
