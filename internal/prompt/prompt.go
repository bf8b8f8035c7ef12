// Package prompt asks the user to confirm a change or pick one of several
// directories.
//
// On a terminal the questions are drawn as huh forms. Otherwise (pipes,
// scripts, tests) a plain line-based prompt reads answers from the input
// stream. Neither form has a timeout: a prompt blocks until an answer,
// end of input or an interrupt.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user gives up on a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks questions on a pair of streams.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
	eof bool

	rawIn io.Reader
}

// New returns a prompter reading answers from in and writing questions to
// out. tty selects the interactive forms.
func New(in io.Reader, out io.Writer, tty bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, tty: tty, rawIn: in}
}

// Confirm asks a yes/no question. End of input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	if p.tty {
		var ok bool
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title(question).Value(&ok),
		)).WithInput(p.rawIn).WithOutput(p.out).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return ok, err
	}

	for {
		fmt.Fprintf(p.out, "%s [y/n] ", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		if ok, valid := parseAnswer(line); valid {
			return ok, nil
		}
		if p.eof {
			fmt.Fprintln(p.out)
			return false, nil
		}
		fmt.Fprintln(p.out, `Please respond with "y" or "n"`)
	}
}

// Choose asks the user to pick one of options and returns its index.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}

	if p.tty {
		opts := make([]huh.Option[int], len(options))
		for i, o := range options {
			opts[i] = huh.NewOption(o, i)
		}
		var choice int
		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().Title(title).Options(opts...).Value(&choice),
		)).WithInput(p.rawIn).WithOutput(p.out).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, ErrAborted
		}
		return choice, err
	}

	for i, o := range options {
		fmt.Fprintf(p.out, "%d: %s\n", i+1, o)
	}
	fmt.Fprintf(p.out, "\n%s (1 - %d): ", title, len(options))
	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" && p.eof {
		return 0, ErrAborted
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid input: %s", line)
	}
	if n < 1 || n > len(options) {
		return 0, fmt.Errorf("index out of range: %d", n)
	}
	return n - 1, nil
}

// readLine returns the next trimmed line. p.eof is set once input ends.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		p.eof = true
		err = nil
	}
	return strings.TrimSpace(line), err
}

// parseAnswer accepts the usual spellings of yes and no.
func parseAnswer(s string) (yes, valid bool) {
	switch strings.ToLower(s) {
	case "y", "yes", "t", "true", "on", "1":
		return true, true
	case "n", "no", "f", "false", "off", "0":
		return false, true
	}
	return false, false
}
