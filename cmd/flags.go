/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. Accessors are provided so extensions can read flag values
// without coupling to cobra internals. The JSON() helper simplifies output
// format detection across all commands.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/format"
	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/prompt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

// DefaultDir is the store directory name under the home directory.
const DefaultDir = ".dtags"

var (
	output   string
	dir      string
	noColour bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Root returns the store directory.
// Priority: --dir flag > DTAGS_DIR env var > ~/.dtags.
func Root() string {
	if dir != "" {
		return absolute(dir)
	}
	if env := os.Getenv("DTAGS_DIR"); env != "" {
		return absolute(env)
	}
	return filepath.Join(path.Home(), DefaultDir)
}

func absolute(p string) string {
	if abs, err := path.Abs(p); err == nil {
		return abs
	}
	return p
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// We ignore the error from PrintJSON here because if we can't print the error,
	// checking it is futile. We just return nil to suppress Cobra's duplicate printing.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// Terminal reports whether stdout is a terminal.
func Terminal() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colour reports whether output should be coloured.
// --no-colour and JSON output always win over the colour setting.
func Colour(cfg *config.Config) bool {
	if noColour || JSON() || cfg == nil {
		return false
	}
	return cfg.UseColour(Terminal())
}

// Style returns the output style for cfg.
func Style(cfg *config.Config) format.Style {
	if !Colour(cfg) {
		return format.Plain
	}
	return format.NewStyle(true)
}

// Prompter returns a prompter reading stdin and asking on stderr, so
// stdout stays clean for pipes.
func Prompter() *prompt.Prompter {
	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
	return prompt.New(os.Stdin, os.Stderr, tty)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Store directory (default $DTAGS_DIR or ~/.dtags)")
	rootCmd.PersistentFlags().BoolVar(&noColour, "no-colour", false, "Disable coloured output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
