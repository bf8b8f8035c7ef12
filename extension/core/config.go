// config.go implements the "dtags config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic.
//
// The config file sits in the store root next to the mapping, so --dir and
// DTAGS_DIR select which config is read and written. Reads show effective
// values (defaults included); writes only record the key that was set.

package core

import (
	"fmt"
	"os"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/path"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  dtags config                  # show all values
  dtags config editor           # show one value
  dtags config editor "code -w" # set a value

Keys:
  colour    auto, always or never (default auto)
  editor    editor for 'dtags edit' (default $VISUAL, $EDITOR, vi)
  shell     shell for 'dtags run' (default $SHELL, /bin/sh)
  confirm   ask before applying changes (default true)
  log       keep an audit log (default true)

The file is config.yaml in the store directory.`,
		Args: cobra.MaximumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch {
			case len(args) == 0:
				return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
			case len(args) == 1 && args[0] == "colour":
				return config.ColourModes, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConfig,
	}
}

func runConfig(_ *cobra.Command, args []string) error {
	root := cmd.Root()
	cfg, err := config.Load(root)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	if cfg.LogEnabled() {
		if err := log.Open(root); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		}
	}

	switch len(args) {
	case 0:
		// Show all values
		all := cfg.All()
		log.Event("core:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		// Get single value
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Path(cfg.File()).Detail("key", args[0]).Detail("value", args[1]).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		v, _ := cfg.Get(args[0])
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], v, path.Collapse(cfg.File()))
	}
	return nil
}
