package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// OperatorInput reads a line of text from the human driving the run. The read
// is blocking and unbounded: solving a challenge takes as long as it takes.
type OperatorInput interface {
	ReadLine(prompt string) (string, error)
}

type terminalInput struct {
	reader *bufio.Reader
}

func newTerminalInput() *terminalInput {
	return &terminalInput{reader: bufio.NewReader(os.Stdin)}
}

func (t *terminalInput) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
