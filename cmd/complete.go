// complete.go provides shell completion helpers shared by extensions.
//
// Completion reads the completion artifact rather than parsing the
// mapping, so it stays fast and works even when the mapping is corrupt.

package cmd

import (
	"strings"

	"github.com/jpl-au/dtags/internal/store"
	"github.com/spf13/cobra"
)

// CompleteTags offers every tag in use.
func CompleteTags(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	tags, err := store.New(Root()).LoadCompletion()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return tags, cobra.ShellCompDirectiveNoFileComp
}

// CompleteTargets offers tags, switching to directory completion once the
// word looks like a path.
func CompleteTargets(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if looksLikePath(toComplete) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return CompleteTags(c, args, toComplete)
}

// CompleteDirs offers directories only.
func CompleteDirs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func looksLikePath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") || strings.HasPrefix(s, "~")
}
