package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdejongh/durduff/internal/cli"
	"github.com/sdejongh/durduff/internal/platform"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.RunContext(ctx, os.Args, os.Stdout, os.Stderr,
		platform.IsTerminal(os.Stdout), platform.IsTerminal(os.Stderr))
	stop()
	os.Exit(code)
}
