/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE handles store initialisation lazily - only
// commands that need the store trigger extension init. This lets guide,
// version and activate work even when the store directory is unusable. The
// noStoreCommands map controls which commands skip initialisation.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/jpl-au/dtags/internal/log"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitError     = 1
	ExitInterrupt = 130
)

var rootCmd = &cobra.Command{
	Use:   "dtags",
	Short: "Tag directories and use the tags in place of paths",
	Long: `Attach tags to directories, jump between them and run commands
across every directory carrying a tag.

  dtags tag ~/src/api ~/src/web -t work
  dtags run work -c 'git status'
  eval "$(dtags activate bash)"; d work

See 'dtags guide' for more.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Initialise extensions for commands that need the store
		cmdName := topLevelCmdName(cmd)
		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "dtags tags -r", returns "tags".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// ExitCodeError is returned by a command that has already reported its
// failure and only needs the process to exit with Code. Commands returning
// it set SilenceErrors so cobra prints nothing further.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Execute runs the root command and handles process lifecycle.
// Registers extensions, executes the command with a context cancelled on
// SIGINT/SIGTERM, and closes the audit log before exit. Exit code 1
// indicates error, 130 an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	registerExtensions()
	err := rootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	log.Close()

	var exitErr *ExitCodeError
	switch {
	case interrupted:
		fmt.Fprintln(os.Stderr)
		os.Exit(ExitInterrupt)
	case errors.As(err, &exitErr):
		os.Exit(exitErr.Code)
	case err != nil:
		os.Exit(ExitError)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
