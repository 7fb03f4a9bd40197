package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/common"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// lineReader reads prompted input. Passwords are read without echo when the
// input is a terminal, and as plain lines otherwise (pipes, tests).
type lineReader struct {
	r   *bufio.Reader
	out *Router
	fd  int
	tty bool
}

func newLineReader(in io.Reader, out *Router) *lineReader {
	lr := &lineReader{r: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		lr.fd = int(f.Fd())
		lr.tty = isTerminal(lr.fd)
	}
	return lr
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (lr *lineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prints prompt and reads one line.
func (lr *lineReader) Ask(prompt string) (string, error) {
	lr.out.Printf("%s: ", prompt)
	return lr.ReadLine()
}

// AskSecret prints prompt and reads a password.
func (lr *lineReader) AskSecret(prompt string) (string, error) {
	lr.out.Printf("%s: ", prompt)
	if !lr.tty {
		return lr.ReadLine()
	}
	pw, err := readPassword(lr.fd)
	lr.out.Println()
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}
