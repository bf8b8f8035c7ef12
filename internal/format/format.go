// Package format renders relations, diffs and reverse indexes for the
// terminal.
//
// Centralises presentation so command implementations only compute what
// changed. Every writer produces plain text when colour is off, which is
// what scripts and the shell integration parse.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Style colours the pieces of an output line.
type Style struct {
	colour bool

	dir     lipgloss.Style
	tag     lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	notice  lipgloss.Style
}

// NewStyle returns a style that emits ANSI colour only when colour is set.
// TTY detection is the caller's job so that "always" works through pipes.
func NewStyle(colour bool) Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return Style{
		colour:  colour,
		dir:     r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		tag:     r.NewStyle().Foreground(lipgloss.Color("5")),
		added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		removed: r.NewStyle().Foreground(lipgloss.Color("1")),
		notice:  r.NewStyle().Bold(true),
	}
}

// Plain is the style used for JSON and non-terminal output.
var Plain = Style{}

func (s Style) render(st lipgloss.Style, v string) string {
	if !s.colour {
		return v
	}
	return st.Render(v)
}

// Dir styles a directory path.
func (s Style) Dir(d string) string { return s.render(s.dir, d) }

// Tag styles a tag with its display sigil.
func (s Style) Tag(t string) string { return s.render(s.tag, "@"+t) }

// Added styles a tag gained in a diff.
func (s Style) Added(t string) string { return s.render(s.added, "+@"+t) }

// Removed styles a tag lost in a diff.
func (s Style) Removed(t string) string { return s.render(s.removed, "-@"+t) }

// Notice styles a status message such as "Nothing to do".
func (s Style) Notice(msg string) string { return s.render(s.notice, msg) }

// Line renders "DIR @a @b". Tags are printed in the order given.
func (s Style) Line(dir string, tags []string) string {
	var b strings.Builder
	b.WriteString(s.Dir(dir))
	for _, t := range tags {
		b.WriteString(" " + s.Tag(t))
	}
	return b.String()
}

// Header renders the "DIR @a @b:" line printed before each run.
func (s Style) Header(dir string, tags []string) string {
	return s.Line(dir, tags) + ":"
}

// Diff prints one "DIR +@a -@b" line per changed directory.
func Diff(w io.Writer, d tag.Diff, st Style) error {
	for _, c := range d {
		var b strings.Builder
		b.WriteString(st.Dir(c.Dir))
		for _, t := range c.Added {
			b.WriteString(" " + st.Added(t))
		}
		for _, t := range c.Removed {
			b.WriteString(" " + st.Removed(t))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// List prints "DIR @a @b" for every directory in lexical order.
//
// With align the tag columns line up across rows. Widths are measured in
// terminal cells so wide runes in paths do not break the layout.
func List(w io.Writer, r store.Relation, st Style, align bool) error {
	dirs := r.Dirs()

	width := 0
	if align {
		for _, d := range dirs {
			width = max(width, runewidth.StringWidth(d))
		}
	}

	for _, d := range dirs {
		padding := ""
		if align {
			padding = strings.Repeat(" ", width-runewidth.StringWidth(d))
		}
		var b strings.Builder
		b.WriteString(st.Dir(d) + padding)
		for _, t := range r.Tags(d) {
			b.WriteString(" " + st.Tag(t))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Reverse prints each tag followed by its directories, indented.
func Reverse(w io.Writer, ix tag.Index, st Style) error {
	for _, t := range ix.Tags() {
		if _, err := fmt.Fprintln(w, st.Tag(t)); err != nil {
			return err
		}
		for _, d := range ix.Dirs(t) {
			if _, err := fmt.Fprintln(w, "  "+st.Dir(d)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RelationJSON prints r in the same layout as the mapping file.
func RelationJSON(w io.Writer, r store.Relation) error {
	data, err := store.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// IndexJSON prints ix as {"tag": ["dir", ...]} with sorted keys and values.
func IndexJSON(w io.Writer, ix tag.Index) error {
	out := make(map[string][]string, len(ix))
	for _, t := range ix.Tags() {
		out[t] = ix.Dirs(t)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
