// Package cli implements the command-line interface for algobench.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eunmann/algobench/pkg/logging"
)

// Run executes the CLI with the given arguments. SIGINT and SIGTERM cancel
// the command's context; benchmark loops stop between runs.
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logging.Close()

	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
