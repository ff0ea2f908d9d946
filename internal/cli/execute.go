package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

const issueURL = "https://github.com/MimeLyc/deepl-cli/issues"

// Execute runs the command tree and maps the outcome to an exit code:
// 0 success, 1 handled or unexpected error, 130 user interrupt. The
// process never terminates via an unhandled crash for input or
// provider failures.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd(version).ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted by user")
		return 130
	}

	if _, handled := clierr.KindOf(err); handled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log.Error("Unexpected error: %v", err)
	fmt.Fprintf(os.Stderr, "Error: an unexpected error occurred: %v\n", err)
	fmt.Fprintf(os.Stderr, "Please report this issue at: %s\n", issueURL)
	return 1
}
