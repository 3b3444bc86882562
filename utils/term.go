package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal returns true if the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Prompt writes the prompt text to stdout and reads a single
// whitespace-trimmed line from r.
func Prompt(r io.Reader, prompt string) (string, error) {
	fmt.Fprintf(os.Stdout, "%s: ", prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimSpace(line), nil
}
