// Package shell implements the command-line evaluation core of posh: a
// quoting/redirection tokenizer, a pipeline assembler, an external
// process launcher with in-process builtins, and a cross-session
// history store. Everything outside this package — prompt rendering,
// key bindings, completion — is an external collaborator consumed
// through the narrow LineReader interface.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpatil/posh/internal/shellconfig"
)

// Shell ties the tokenizer, pipeline assembler, launcher, and history
// store together behind a single Run loop. It is not safe for
// concurrent use.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	History *History

	pathDirs []string
	builtins map[string]Builtin
	reader   LineReader
	exitCode int
}

// New constructs a Shell. PATH is captured once, at construction time;
// later changes to the environment variable do not affect an existing
// Shell. The history file path, if any, is taken from HISTFILE.
//
// cfg supplies the runtime knobs the core itself leaves unconstrained:
// cfg.ExtraPath directories are searched ahead of PATH, and
// cfg.HistoryLimit caps the in-memory history (0 means unbounded). A
// nil cfg behaves like shellconfig.Default().
func New(cfg *shellconfig.Config, reader LineReader, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	if cfg == nil {
		cfg = shellconfig.Default()
	}

	var dirs []string
	dirs = append(dirs, cfg.ExtraPath...)
	if path := os.Getenv("PATH"); path != "" {
		dirs = append(dirs, strings.Split(path, string(os.PathListSeparator))...)
	}

	history := NewHistory(os.Getenv("HISTFILE"))
	history.SetLimit(cfg.HistoryLimit)

	sh := &Shell{
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		History:  history,
		pathDirs: dirs,
		reader:   reader,
	}
	registerBuiltins(sh)
	return sh
}

// lookup performs a left-to-right search for name across cfg.ExtraPath
// (checked first) then PATH, requiring a regular, executable file.
func (sh *Shell) lookup(name string) (string, bool) {
	for _, dir := range sh.pathDirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode()&0111 != 0 {
			return candidate, true
		}
	}
	return "", false
}

// Run executes the read-eval-print loop until the "exit" builtin
// fires, the line reader reports io.EOF, or a fatal read error occurs.
// It returns the process exit code (the exit builtin's argument, or 0)
// and any fatal error.
func (sh *Shell) Run() (int, error) {
	if err := sh.History.LoadStartup(); err != nil {
		fmt.Fprintln(sh.Stderr, "history:", err)
	}

	for {
		line, err := sh.reader.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if perr := sh.History.PersistOnExit(); perr != nil {
					fmt.Fprintln(sh.Stderr, "history:", perr)
				}
				return sh.exitCode, nil
			}
			return sh.exitCode, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sh.History.AppendNew(line)

		stages, err := ParsePipeline(line)
		if err != nil {
			fmt.Fprintln(sh.Stderr, err)
			continue
		}

		if err := sh.runPipeline(stages); err != nil {
			if errors.Is(err, ErrExit) {
				return sh.exitCode, nil
			}
			fmt.Fprintln(sh.Stderr, err)
		}
	}
}
