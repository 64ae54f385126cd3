package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chat-linux-gguf/chatmenu/internal/entrypoint"
	"github.com/chat-linux-gguf/chatmenu/internal/errdefs"
	"github.com/chat-linux-gguf/chatmenu/internal/log"
	"github.com/chat-linux-gguf/chatmenu/internal/workspace"
)

type Action int

const (
	ActionInvalid Action = iota
	ActionRunProgram
	ActionRunInstall
	ActionRunValidate
	ActionExit
)

// MaxRetries is how many consecutive invalid selections are tolerated
// before the whole process gives up.
const MaxRetries = 3

// State is threaded through the loop rather than held in a global.
type State struct {
	Retries int
}

// Dispatcher owns one menu session: it renders the menu, reads selections
// and hands valid ones to the injected entry points.
type Dispatcher struct {
	In  io.Reader
	Out io.Writer
	WS  *workspace.Workspace

	Program   entrypoint.EntryPoint
	Installer entrypoint.EntryPoint
	Validator entrypoint.EntryPoint

	// Interactive controls screen clearing and the selection prompt. When
	// stdin is not a terminal the loop still consumes lines, it just does
	// not dress them up.
	Interactive bool
}

// ParseSelection strips all whitespace from a raw input line and maps it to
// an action. The exit selection is case-insensitive.
func ParseSelection(raw string) Action {
	s := stripWhitespace(raw)
	switch s {
	case "1":
		return ActionRunProgram
	case "2":
		return ActionRunInstall
	case "3":
		return ActionRunValidate
	case "x", "X":
		return ActionExit
	default:
		return ActionInvalid
	}
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Run blocks on the menu loop until the user exits, input is exhausted, or
// the retry limit is exceeded. It returns errdefs.ErrRetryLimitExceeded on
// the latter; the command layer turns that into a non-zero process exit.
func (d *Dispatcher) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(d.In)
	state := State{}

	for {
		d.display()

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading selection: %w", err)
			}
			// Input exhausted. Nothing left to dispatch.
			return nil
		}

		next, done, err := d.step(ctx, state, scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		state = next
	}
}

func (d *Dispatcher) display() {
	if d.Interactive {
		d.clearScreen()
	}
	fmt.Fprint(d.Out, RenderMenu())
	if d.Interactive {
		fmt.Fprint(d.Out, SelectionPrompt)
	}
}

// step consumes one line of input and returns the next state. Precondition
// failures report and leave the state untouched; completed dispatches reset
// the retry counter whatever the subprocess exit code was.
func (d *Dispatcher) step(ctx context.Context, state State, line string) (State, bool, error) {
	switch ParseSelection(line) {
	case ActionExit:
		return state, true, nil

	case ActionRunProgram:
		if err := d.WS.CheckEnvironment(); err != nil {
			log.Error(err)
			return state, false, nil
		}
		if err := d.WS.CheckConfig(); err != nil {
			log.Error(err)
			return state, false, nil
		}
		d.invoke(ctx, d.Program)
		state.Retries = 0

	case ActionRunInstall:
		d.invoke(ctx, d.Installer)
		state.Retries = 0

	case ActionRunValidate:
		if err := d.WS.CheckEnvironment(); err != nil {
			log.Error(err)
			return state, false, nil
		}
		d.invoke(ctx, d.Validator)
		state.Retries = 0

	case ActionInvalid:
		state.Retries++
		if state.Retries >= MaxRetries {
			log.Errorf("invalid selection %q, giving up after %d attempts", strings.TrimSpace(line), state.Retries)
			return state, false, errdefs.ErrRetryLimitExceeded
		}
		log.Warnf("invalid selection %q (%d/%d)", strings.TrimSpace(line), state.Retries, MaxRetries)
	}

	return state, false, nil
}

// invoke runs one entry point to completion. Failures are reported with
// their exit code and never terminate the dispatcher.
func (d *Dispatcher) invoke(ctx context.Context, ep entrypoint.EntryPoint) {
	log.Infof("running %s", ep.Name())

	code, err := ep.Run(ctx)
	if err != nil {
		log.Errorf("%s could not be started: %v", ep.Name(), err)
		return
	}
	if code != 0 {
		subErr := &errdefs.SubprocessError{Name: ep.Name(), ExitCode: code}
		log.Error(subErr)
		return
	}
	log.Infof("%s completed successfully", ep.Name())
}
