// Package termline adapts github.com/chzyer/readline's interactive
// line editor to the narrow LineReader interface the shell core
// consumes. Prompt rendering, key bindings, and completion all stay on
// this side of the boundary.
package termline

import (
	"io"

	"github.com/chzyer/readline"

	"github.com/kpatil/posh/internal/shell"
)

// Reader wraps a *readline.Instance so it satisfies shell.LineReader.
type Reader struct {
	rl *readline.Instance
}

// New builds a Reader with the given prompt and history file path.
// readline's own history auto-save is disabled: the shell's History
// store is the single source of truth for save/load/append
// provenance, so a second on-disk writer would race it.
func New(prompt, historyFile string) (*Reader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryFile:            historyFile,
		HistorySearchFold:      true,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	})
	if err != nil {
		return nil, err
	}
	return &Reader{rl: rl}, nil
}

// Readline returns the next line, translating readline's signals into
// the shell's expected contract: readline.ErrInterrupt (Ctrl-C) becomes
// an empty line, which the Run loop skips, and every other error is
// reported as io.EOF, which ends the Run loop gracefully.
func (r *Reader) Readline() (string, error) {
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", nil
	}
	if err != nil {
		return "", io.EOF
	}
	return line, nil
}

// SeedHistory populates readline's in-memory recall buffer (Up-arrow)
// from entries already loaded into the shell's own History store, so
// that interactive recall works for lines loaded at startup without a
// second on-disk writer.
func (r *Reader) SeedHistory(entries []shell.HistoryEntry) {
	for _, e := range entries {
		r.rl.SaveHistory(e.Text)
	}
}

// Close releases the underlying terminal state.
func (r *Reader) Close() error {
	return r.rl.Close()
}
