// Command posh is an interactive POSIX-flavored command-line shell.
//
// posh reads a line at a time from the terminal, tokenizes it honoring
// single/double quoting and backslash escaping, assembles it into a
// pipeline of one or more stages wired together with pipes and
// redirections, runs each stage as a builtin or an external process
// found on PATH, and persists a cross-session command history.
//
// # Features
//
// Built-in commands:
//   - echo:    print arguments to stdout
//   - exit:    terminate the shell, persisting history first
//   - type:    report whether a name is a builtin or resolves via PATH
//   - pwd:     print the working directory
//   - cd:      change directory ("~" expands to HOME; no-op with no argument)
//   - history: display, load, write, or append the command history
//
// External commands: any executable found on PATH, with full argument
// quoting, pipes, and stdout/stderr redirection support.
//
// I/O redirection:
//   - >  or 1>  : redirect stdout (truncate-or-create)
//   - >> or 1>> : redirect stdout (append)
//   - 2>        : redirect stderr (truncate-or-create)
//   - 2>>       : redirect stderr (append)
//
// Pipelines: any number of stages separated by " | " connect each
// stage's stdout to the next stage's stdin; stderr is never piped.
//
// # Installation
//
//	go build -o posh ./cmd/posh
//
// # Environment
//
// posh reads the following environment variables:
//   - PATH: colon- (or semicolon-) separated executable search path
//   - HOME: used for "~" expansion in cd
//   - HISTFILE: optional path for startup history load and exit-time append
//   - POSH_HISTORY_LIMIT: optional override for the in-memory history cap
//
// ~/.posh/config.yaml, if present, sets history_limit (same effect as
// POSH_HISTORY_LIMIT, which takes precedence) and extra_path, a list
// of directories searched for executables ahead of PATH.
//
// # Exit codes
//
//   - The integer argument to "exit", or 0 if omitted or non-numeric.
//   - A fatal error reading the next line ends the shell with status 1.
//     History is persisted on that path only when the line reader
//     reports the failure as end of input, which the readline-backed
//     reader does for every read error.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kpatil/posh/internal/shell"
	"github.com/kpatil/posh/internal/shellconfig"
	"github.com/kpatil/posh/internal/termline"
)

const prompt = "$ "

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := shellconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "posh: config:", err)
		cfg = shellconfig.Default()
	}

	reader, term := newLineReader()
	if term != nil {
		defer term.Close()
	}

	sh := shell.New(cfg, reader, os.Stdin, os.Stdout, os.Stderr)

	if term != nil {
		if err := sh.History.LoadStartup(); err == nil {
			term.SeedHistory(sh.History.All())
		}
	}

	code, err := sh.Run()
	if err != nil {
		log.Println(err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

// newLineReader wires a readline-backed reader, falling back to a
// plain line scanner over stdin only when termline.New returns an
// error; stdin is not otherwise checked for being a terminal. The
// readline reader gets no history file of its own, so the shell's
// History store stays the only writer of HISTFILE. The second return
// value is non-nil only for the readline case, so callers know
// whether there is a terminal session to close.
func newLineReader() (shell.LineReader, *termline.Reader) {
	term, err := termline.New(prompt, "")
	if err != nil {
		return shell.NewScannerLineReader(os.Stdin, os.Stdout, prompt), nil
	}
	return term, term
}
