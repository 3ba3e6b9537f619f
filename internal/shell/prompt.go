package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrQuit means the user closed the input stream or aborted a prompt.
var ErrQuit = errors.New("input closed")

// Prompter collects menu choices and field values from the user.
type Prompter interface {
	// Choose returns the index of the selected option.
	Choose(title string, options []string) (int, error)
	Ask(label string) (string, error)
}

// LinePrompter reads numbered choices and answers one line at a time.
// It is used with --plain and whenever stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out *Printer
}

func NewLinePrompter(in io.Reader, out *Printer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (l *LinePrompter) Choose(title string, options []string) (int, error) {
	for {
		l.out.Section(title)
		for i, opt := range options {
			l.out.Printf("%d. %s\n", i+1, opt)
		}
		raw, err := l.Ask("Choose an option")
		if err != nil {
			return -1, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		l.out.Muted("Invalid option. Please try again.")
	}
}

func (l *LinePrompter) Ask(label string) (string, error) {
	l.out.Printf("%s: ", label)
	line, err := l.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			l.out.Println()
			return "", ErrQuit
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
