package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/internal/cli"
	apperrors "github.com/matzehuels/assetmap/pkg/errors"
)

// Exit codes.
const (
	exitError        = 1
	exitInvalidInput = 2
	exitInterrupted  = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitCode(run(ctx)))
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode reports err and maps it to a process exit code. Rejected
// inventories and flags exit with 2 so scripts can tell them from failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case apperrors.IsInvalidInput(err):
		fmt.Fprintln(os.Stderr, "invalid input:", apperrors.UserMessage(err))
		return exitInvalidInput
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitError
}
