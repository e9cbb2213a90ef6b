package shell

import (
	"bufio"
	"io"
	"strings"
)

// LineReader is the narrow interface the core consumes from a line
// editor. Prompt rendering, key bindings, and completion all live on
// the other side of this boundary — the core only ever asks for the
// next line.
type LineReader interface {
	// Readline returns the next input line (without its trailing
	// newline) or an error. io.EOF signals a clean end of input
	// (e.g. Ctrl-D at an empty prompt).
	Readline() (string, error)
}

// ScannerLineReader is a minimal LineReader backed by a bufio.Scanner,
// used when no richer line editor is wired in (non-interactive input,
// or tests). It prints the prompt itself before each read, since the
// core never does.
type ScannerLineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewScannerLineReader builds a ScannerLineReader over r, writing the
// given prompt to out before each line is requested.
func NewScannerLineReader(r io.Reader, out io.Writer, prompt string) *ScannerLineReader {
	return &ScannerLineReader{
		scanner: bufio.NewScanner(r),
		out:     out,
		prompt:  prompt,
	}
}

func (s *ScannerLineReader) Readline() (string, error) {
	io.WriteString(s.out, s.prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}
