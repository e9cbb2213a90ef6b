package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		if c != nil {
			c.Close()
		}
	}
}

// notFoundError reports that cmd resolved to neither a builtin nor
// anything on the search path. Its message is exactly "cmd: not
// found", the line the launcher prints to stdout per the propagation
// policy for an unresolved command.
func notFoundError(cmd string) error {
	return fmt.Errorf("%s: %w", cmd, ErrNotFound)
}

func (sh *Shell) openRedirect(spec *RedirectSpec) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if spec.Kind == RedirectAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(spec.Path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Path, err)
	}
	return f, nil
}

// runPipeline wires stdin/stdout/stderr for every stage per §4.2,
// spawns external stages and dispatches builtins strictly left to
// right (so each stage's stdin is connected before it starts running),
// then reaps every spawned child before returning. A builtin that
// shares the pipeline with other stages runs on its own goroutine so
// that its writes to a downstream pipe cannot deadlock against a
// reader that has not been spawned yet; a lone builtin runs
// synchronously.
func (sh *Shell) runPipeline(stages []Stage) error {
	n := len(stages)
	if n == 0 {
		return nil
	}

	stdins := make([]io.Reader, n)
	stdouts := make([]io.Writer, n)
	stderrs := make([]io.Writer, n)
	for i := range stages {
		stdins[i] = sh.Stdin
		stdouts[i] = sh.Stdout
		stderrs[i] = sh.Stderr
	}

	pipeReaders := make([]*os.File, n) // read end consumed as this stage's stdin
	pipeWriters := make([]*os.File, n) // write end this stage's stdout feeds

	var pipeFDs []io.Closer
	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			closeAll(pipeFDs)
			return fmt.Errorf("pipe: %w", err)
		}
		stdouts[i] = pw
		stdins[i+1] = pr
		pipeWriters[i] = pw
		pipeReaders[i+1] = pr
		pipeFDs = append(pipeFDs, pr, pw)
	}

	var procs []*exec.Cmd
	var waits []func() error

	abort := func(cause error) error {
		for _, p := range procs {
			p.Wait()
		}
		for _, w := range waits {
			w()
		}
		closeAll(pipeFDs)
		return cause
	}

	for i, stage := range stages {
		isLast := i == n-1

		out := stdouts[i]
		errw := stderrs[i]

		var localClosers []io.Closer
		if r := pipeReaders[i]; r != nil {
			localClosers = append(localClosers, r)
		}
		if w := pipeWriters[i]; w != nil {
			localClosers = append(localClosers, w)
		}

		if isLast && stage.StdoutRedir != nil {
			f, err := sh.openRedirect(stage.StdoutRedir)
			if err != nil {
				closeAll(localClosers)
				return abort(err)
			}
			out = f
			localClosers = append(localClosers, f)
		}
		if stage.StderrRedir != nil {
			f, err := sh.openRedirect(stage.StderrRedir)
			if err != nil {
				closeAll(localClosers)
				return abort(err)
			}
			errw = f
			localClosers = append(localClosers, f)
		}

		in := stdins[i]

		if fn, ok := sh.builtins[stage.Cmd]; ok {
			if n == 1 {
				err := fn(sh, stage.Argv, in, out, errw)
				closeAll(localClosers)
				if errors.Is(err, ErrExit) {
					return err
				}
				if err != nil {
					fmt.Fprintln(sh.Stderr, err)
				}
				continue
			}

			done := make(chan error, 1)
			go func(fn Builtin, argv []string, in io.Reader, out, errw io.Writer, closers []io.Closer) {
				err := fn(sh, argv, in, out, errw)
				closeAll(closers)
				done <- err
			}(fn, stage.Argv, in, out, errw, localClosers)
			waits = append(waits, func() error { return <-done })
			continue
		}

		path, ok := sh.lookup(stage.Cmd)
		if !ok {
			fmt.Fprintln(sh.Stdout, notFoundError(stage.Cmd))
			closeAll(localClosers)
			continue
		}

		cmd := exec.Command(path, stage.Argv...)
		cmd.Args = append([]string{stage.Cmd}, stage.Argv...)
		cmd.Stdin = in
		cmd.Stdout = out
		cmd.Stderr = errw

		if err := cmd.Start(); err != nil {
			closeAll(localClosers)
			return abort(fmt.Errorf("%s: %w", stage.Cmd, err))
		}
		procs = append(procs, cmd)
		closeAll(localClosers)
	}

	for _, p := range procs {
		p.Wait()
	}
	for _, w := range waits {
		if err := w(); err != nil && !errors.Is(err, ErrExit) {
			fmt.Fprintln(sh.Stderr, err)
		} else if errors.Is(err, ErrExit) {
			return err
		}
	}
	return nil
}
