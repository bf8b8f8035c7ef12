/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that resolves
// the store root, loads config, opens the audit log and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before flags such as --dir are parsed. The store is
// created once and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/store"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// Most commands need the store and config, but some must work without
// them: cobra's own help and completion commands, plus anything an
// extension declares through the Storeless interface (guide, version).
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}

	// Add extension-declared storeless commands
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the store and injects it into extensions.
//
// Loading the mapping is left to the commands: a corrupt mapping must not
// stop "dtags edit" from opening it. The audit log is opened here because
// its location and on/off switch depend on the store root and config.
func initExtensions() error {
	initOnce.Do(func() {
		root := Root()

		cfg, err := config.Load(root)
		if err != nil {
			initErr = err
			return
		}

		if cfg.LogEnabled() {
			// Best effort: a read-only store still lists and navigates.
			if err := log.Open(root); err != nil {
				fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
			}
		}

		extContext = extension.NewContext(store.New(root), cfg)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noStoreCommands after all extensions are registered
		noStoreCommands = buildNoStoreCommands()
	})
}
