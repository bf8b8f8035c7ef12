// Package shell renders the integration scripts printed by "dtags activate".
//
// A process cannot change its parent's working directory, so "dtags d"
// only records where to go. The script defines a d function that runs it,
// cds into the recorded destination and removes the file, and wires tab
// completion to the completion artifact the store keeps up to date.
package shell

import (
	"embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var files embed.FS

// Supported lists the shells with an integration script.
var Supported = []string{"bash", "fish", "zsh"}

// Paths locates the binary and store artifacts the script refers to.
type Paths struct {
	Bin         string // dtags executable
	Destination string // store destination file
	Completion  string // store completion file
}

// Render writes the integration script for sh to w.
func Render(w io.Writer, sh string, p Paths) error {
	if !slices.Contains(Supported, sh) {
		return fmt.Errorf("unsupported shell %q (supported: %s)", sh, strings.Join(Supported, ", "))
	}

	tmpl, err := template.ParseFS(files, sh+".tmpl")
	if err != nil {
		return err
	}

	q := posixQuote
	if sh == "fish" {
		q = fishQuote
	}
	return tmpl.Execute(w, Paths{
		Bin:         q(p.Bin),
		Destination: q(p.Destination),
		Completion:  q(p.Completion),
	})
}

// posixQuote single-quotes s for bash and zsh.
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// fishQuote single-quotes s for fish, where \ and ' are escaped inside quotes.
func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
