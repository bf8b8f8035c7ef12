// version.go implements the version command.
//
// Besides build details it reports the store directory in effect, since
// --dir and DTAGS_DIR make that easy to lose track of.

package core

import (
	"fmt"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/version"
	"github.com/spf13/cobra"
)

const flagShort = "short"

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the build tag, build date, git commit, Go version, platform and
the store directory in use.

  dtags version           # full details
  dtags version --short   # build tag only`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			short, _ := c.Flags().GetBool(flagShort)

			info := version.Get()
			info.Store = path.Collapse(cmd.Root())

			switch {
			case cmd.JSON():
				return cmd.PrintJSON(info)
			case short:
				fmt.Fprintln(cmd.Out(), info.BuildTag)
			default:
				fmt.Fprint(cmd.Out(), info.String())
			}
			return nil
		},
	}
	c.Flags().Bool(flagShort, false, "Print only the build tag")
	return c
}
