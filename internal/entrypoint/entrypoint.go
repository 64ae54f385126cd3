package entrypoint

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// EntryPoint is an external executable invoked to perform one menu action.
// The only contract is the integer exit code: 0 means success, anything else
// is failure. No output is parsed.
type EntryPoint interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

// Script runs a Python entry-point script with inherited standard streams.
// Interpreter is resolved at run time so the installer can fall back to the
// system python before the virtual environment exists.
type Script struct {
	Label       string
	Dir         string
	Path        string
	Interpreter func() string

	// Venv resolves the virtual environment directory to activate around
	// the invocation. Returning "" skips activation; the installer does
	// that until it has created the environment.
	Venv func() string

	// Streams default to the process's own when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s *Script) Name() string { return s.Label }

func (s *Script) Run(ctx context.Context) (int, error) {
	if s.Venv != nil {
		if venvDir := s.Venv(); venvDir != "" {
			activation, err := ActivateVenv(venvDir)
			if err != nil {
				return -1, err
			}
			defer activation.Release()
		}
	}

	cmd := exec.CommandContext(ctx, s.Interpreter(), s.Path)
	cmd.Dir = s.Dir
	cmd.Env = os.Environ()

	cmd.Stdin = s.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
