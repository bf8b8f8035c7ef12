// Package core provides the core extension for dtags.
// It registers commands: activate, config, guide, version.
package core

import (
	"github.com/jpl-au/dtags/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core" - this extension provides setup and help commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newActivateCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// NoStoreCommands returns commands that work without the store.
// activate: Only needs the store root to print file locations.
// config: Only touches config.yaml.
// guide: Embedded documentation.
// version: Displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"activate", "config", "guide", "version"}
}
