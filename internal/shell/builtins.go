package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Builtin is an in-process command: it reads argv and writes directly
// to the wired stdin/stdout/stderr for its stage, exactly as an
// external command would see them.
type Builtin func(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error

func registerBuiltins(sh *Shell) {
	sh.builtins = map[string]Builtin{
		"echo":    builtinEcho,
		"exit":    builtinExit,
		"type":    builtinType,
		"pwd":     builtinPwd,
		"cd":      builtinCd,
		"history": builtinHistory,
	}
}

// builtinEcho is a true in-process builtin rather than a dispatch to
// the system "echo": the observable behavior is identical as long as
// quoting is respected and a trailing newline is emitted, which the
// tokenizer and strings.Join already guarantee.
func builtinEcho(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fmt.Fprintln(stdout, strings.Join(args, " "))
	return nil
}

// builtinExit persists history (if a file is configured) and signals
// the Run loop to stop via ErrExit. A non-numeric argument yields exit
// status 0.
func builtinExit(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			code = n
		}
	}

	if err := sh.History.PersistOnExit(); err != nil {
		fmt.Fprintln(stderr, "history:", err)
	}

	sh.exitCode = code
	return ErrExit
}

func builtinType(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(stdout, "type: usage: type NAME")
		return nil
	}

	name := args[0]

	if _, ok := sh.builtins[name]; ok {
		fmt.Fprintln(stdout, name, "is a shell builtin")
		return nil
	}

	if path, ok := sh.lookup(name); ok {
		fmt.Fprintln(stdout, name, "is", path)
		return nil
	}

	fmt.Fprintln(stdout, name+": not found")
	return nil
}

func builtinPwd(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(stderr, "pwd:", err)
		return nil
	}
	fmt.Fprintln(stdout, dir)
	return nil
}

// builtinCd treats a bare "cd" with no argument as a silent no-op,
// rather than falling back to HOME.
func builtinCd(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return nil
	}

	target := args[0]
	chdirTo := target
	if target == "~" {
		if home := os.Getenv("HOME"); home != "" {
			chdirTo = home
		}
	}

	if err := os.Chdir(chdirTo); err != nil {
		fmt.Fprintf(stderr, "cd: %s: No such file or directory\n", target)
	}
	return nil
}

// builtinHistory implements "history [N | -r FILE | -w FILE | -a FILE]".
// Only one of the -r/-w/-a operations runs per invocation: when more
// than one is given, -r takes precedence over -w, and -w over -a,
// whatever their order on the line, matching the
// one-operation-per-invocation shape of the scenarios in §8.
func builtinHistory(sh *Shell, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	readPath := fs.StringP("read", "r", "", "load history entries from FILE as saved")
	writePath := fs.StringP("write", "w", "", "truncate FILE and write all history entries")
	appendPath := fs.StringP("append", "a", "", "append unsaved history entries to FILE")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, "history:", err)
		return nil
	}

	switch {
	case *readPath != "":
		if err := sh.History.Load(*readPath); err != nil {
			fmt.Fprintln(stderr, "history:", err)
		}
		return nil

	case *writePath != "":
		if err := sh.History.WriteFile(*writePath); err != nil {
			fmt.Fprintln(stderr, "history:", err)
		}
		return nil

	case *appendPath != "":
		if err := sh.History.AppendFile(*appendPath); err != nil {
			fmt.Fprintln(stderr, "history:", err)
		}
		return nil
	}

	entries := sh.History.All()
	start := 1
	if rest := fs.Args(); len(rest) > 0 {
		if n, ok := parseCount(rest[0]); ok && n < len(entries) {
			start = len(entries) - n + 1
			entries = entries[len(entries)-n:]
		}
	}

	for i, e := range entries {
		fmt.Fprintln(stdout, FormatEntry(start+i, e.Text))
	}
	return nil
}
