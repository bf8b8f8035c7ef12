// Package edit round-trips text through the user's editor.
//
// "dtags edit" uses it to let the user rewrite the mapping file by hand.
// The content is written to a temp file, the editor is run on it in the
// foreground, and whatever the user saved is read back.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when the editor command is blank.
var ErrNoEditor = errors.New("no editor configured")

// Options configures an editor session.
type Options struct {
	Editor  string    // command line, e.g. "vim" or "code --wait"
	Dir     string    // where the temp file is created; "" means os.TempDir
	Pattern string    // temp file name pattern, e.g. "mapping-*.json"
	Stdin   io.Reader // terminal wiring for the editor; nil means os.Stdin
	Stdout  io.Writer
	Stderr  io.Writer
}

// Run opens content in the editor and returns the saved result.
// The temp file is removed on return.
func Run(ctx context.Context, content []byte, opts Options) ([]byte, error) {
	argv := strings.Fields(opts.Editor)
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	f, err := os.CreateTemp(opts.Dir, opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("creating edit file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.Write(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing edit file: %w", err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], name)...)
	cmd.Stdin = or[io.Reader](opts.Stdin, os.Stdin)
	cmd.Stdout = or[io.Writer](opts.Stdout, os.Stdout)
	cmd.Stderr = or[io.Writer](opts.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %s: %w", argv[0], err)
	}

	edited, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading edit file: %w", err)
	}
	return edited, nil
}

func or[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
