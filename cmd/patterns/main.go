// Command patterns serves and browses the design pattern catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vango-dev/patterns/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  +------+   interactive
  | </>  |   patterns
  +------+
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.Print(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
