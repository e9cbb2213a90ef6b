package shell

import "errors"

// ErrExit signals that the "exit" builtin ran and the shell's Run loop
// should return, after the caller has had a chance to persist history.
var ErrExit = errors.New("exit")

// ErrNotFound means cmd did not resolve to a builtin or to anything on
// PATH. The launcher prints "cmd: not found" itself; callers mostly use
// this for errors.Is checks in tests.
var ErrNotFound = errors.New("not found")

// ErrBadRedirect means a redirection operator appeared with no target
// token following it.
var ErrBadRedirect = errors.New("bad redirect: missing target")

// ErrEmptyPipeline means a stage was produced with no command token,
// e.g. from two " | " separators with nothing between them, a stage
// holding only a redirection, or a line that is entirely whitespace
// around pipe separators. A bare "|" without surrounding spaces is not
// a separator and is tokenized as an ordinary word.
var ErrEmptyPipeline = errors.New("empty pipeline stage")
