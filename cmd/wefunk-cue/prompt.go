package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/handiism/wefunk-cue/internal/tui"
)

// prompter asks the user for a single line of input.
type prompter interface {
	Ask(label string) (string, error)
}

// newPrompter uses an interactive Bubble Tea prompt when in is a terminal
// and plain line reads otherwise.
func newPrompter(in io.Reader, out io.Writer) prompter {
	if file, ok := in.(*os.File); ok && isTerminal(file) {
		return teaPrompter{}
	}
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type teaPrompter struct{}

func (teaPrompter) Ask(label string) (string, error) {
	return tui.Prompt(label, "")
}

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *linePrompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
