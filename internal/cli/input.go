package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// readPasswordFn and isTerminal are test seams for golang.org/x/term.
var (
	readPasswordFn = term.ReadPassword
	isTerminal     = term.IsTerminal
)

// readPassword reads a password without echo when stdin is a terminal and
// falls back to a single line of input otherwise, so the tool can be scripted.
func (a *App) readPassword(prompt string) (string, error) {
	if a.stdinFd >= 0 && isTerminal(a.stdinFd) {
		if _, err := fmt.Fprint(a.errOut, prompt); err != nil {
			return "", err
		}
		pw, err := readPasswordFn(a.stdinFd)
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		defer wipe(pw)
		return nonEmpty(string(pw))
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

func nonEmpty(pw string) (string, error) {
	if pw == "" {
		return "", ErrEmptyPassword
	}
	return pw, nil
}

// wipe zeroes the terminal buffer once it has been copied.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
