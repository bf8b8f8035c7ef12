// Package extension provides the plugin architecture for dtags. Extensions
// group related commands and register at init time, so a new command is
// added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for dtags extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared store and config before
// any of their commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Help and documentation commands that must always work
// 2. Commands that resolve the store root themselves (activate, config)
type Storeless interface {
	NoStoreCommands() []string
}
