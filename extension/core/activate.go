// activate.go implements "dtags activate", which prints the shell
// integration script defining the d function.

package core

import (
	"os"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/internal/shell"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/spf13/cobra"
)

func newActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate {bash|fish|zsh}",
		Short: "Print the shell integration script",
		Long: `Print the script that defines the d function and tag completion.

  eval "$(dtags activate bash)"     # ~/.bashrc
  eval "$(dtags activate zsh)"      # ~/.zshrc
  dtags activate fish | source      # ~/.config/fish/config.fish

The script refers to the store selected by --dir or DTAGS_DIR when it
was generated.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Supported,
		RunE: func(_ *cobra.Command, args []string) error {
			st := store.New(cmd.Root())
			return cmd.PrintJSONError(shell.Render(cmd.Out(), args[0], shell.Paths{
				Bin:         binary(),
				Destination: st.DestinationPath(),
				Completion:  st.CompletionPath(),
			}))
		},
	}
}

// binary returns the path of the running executable, falling back to the
// name on $PATH.
func binary() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return "dtags"
}
