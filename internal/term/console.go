// Package term adapts the prompt and notification primitives to the process
// terminal.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console reads user input from one shared buffered reader and writes
// prompts and notifications to a single writer.
//
// When the input is a real terminal, password prompts read without echo.
// Otherwise (pipes, tests) input is read line by line and EOF acts as the
// cancel affordance.
type Console struct {
	out    io.Writer
	in     *bufio.Reader
	fd     int
	isTerm bool
}

// NewConsole builds a console over arbitrary streams. Terminal detection
// only applies when in is an *os.File.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{out: out, in: bufio.NewReader(in), fd: -1}
	if f, ok := in.(*os.File); ok {
		c.fd = int(f.Fd())
		c.isTerm = term.IsTerminal(c.fd)
	}
	return c
}

// Default returns the console over stdin/stderr. Stderr keeps prompts and
// alerts out of any redirected stdout.
func Default() *Console {
	return NewConsole(os.Stdin, os.Stderr)
}

// RequestInput solicits a secret value. ok is false when the user cancelled
// (EOF / Ctrl-D); err reports transport failures only.
func (c *Console) RequestInput(prompt string) (string, bool, error) {
	fmt.Fprint(c.out, prompt)
	if c.isTerm {
		b, err := term.ReadPassword(c.fd)
		fmt.Fprintln(c.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", false, nil
			}
			return "", false, fmt.Errorf("read password: %w", err)
		}
		return string(b), true, nil
	}
	return c.readLine()
}

// ReadLine solicits one echoed line, for non-secret input such as exercise
// identifiers. Semantics match RequestInput.
func (c *Console) ReadLine(prompt string) (string, bool, error) {
	fmt.Fprint(c.out, prompt)
	return c.readLine()
}

func (c *Console) readLine() (string, bool, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", false, nil
			}
			// Final unterminated line still counts as a response.
			return strings.TrimRight(line, "\r\n"), true, nil
		}
		return "", false, fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// Notify delivers a one-way, user-facing message.
func (c *Console) Notify(msg string) {
	fmt.Fprintln(c.out, msg)
}
