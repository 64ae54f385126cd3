package menu

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chat-linux-gguf/chatmenu/internal/errdefs"
	"github.com/chat-linux-gguf/chatmenu/internal/workspace"
)

type fakeEntryPoint struct {
	name     string
	exitCode int
	runErr   error
	calls    int
}

func (f *fakeEntryPoint) Name() string { return f.name }

func (f *fakeEntryPoint) Run(ctx context.Context) (int, error) {
	f.calls++
	return f.exitCode, f.runErr
}

type testEnv struct {
	fs        afero.Fs
	ws        *workspace.Workspace
	program   *fakeEntryPoint
	installer *fakeEntryPoint
	validator *fakeEntryPoint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := "/app"
	for _, script := range []string{"launcher.py", "installer.py", "validation.py"} {
		require.NoError(t, afero.WriteFile(fs, root+"/"+script, []byte("#"), 0644))
	}

	return &testEnv{
		fs:        fs,
		ws:        workspace.New(fs, root),
		program:   &fakeEntryPoint{name: "main program"},
		installer: &fakeEntryPoint{name: "installer"},
		validator: &fakeEntryPoint{name: "validator"},
	}
}

func (e *testEnv) prepareVenv(t *testing.T) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.fs, "/app/.venv/bin/activate", []byte("#"), 0644))
}

func (e *testEnv) prepareConfig(t *testing.T) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.fs, "/app/data/persistent.json", []byte("{}"), 0644))
}

func (e *testEnv) dispatcher(input string) *Dispatcher {
	return &Dispatcher{
		In:        strings.NewReader(input),
		Out:       io.Discard,
		WS:        e.ws,
		Program:   e.program,
		Installer: e.installer,
		Validator: e.validator,
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"1", ActionRunProgram},
		{" 1 ", ActionRunProgram},
		{"\t1\n", ActionRunProgram},
		{"2", ActionRunInstall},
		{"3", ActionRunValidate},
		{"x", ActionExit},
		{"X", ActionExit},
		{"  x  ", ActionExit},
		{"", ActionInvalid},
		{"   ", ActionInvalid},
		{"9", ActionInvalid},
		{"11", ActionInvalid},
		{"exit", ActionInvalid},
	}

	for _, tt := range tests {
		t.Run("input_"+strings.TrimSpace(tt.input)+"_", func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSelection(tt.input))
		})
	}
}

func TestExitSelectionReturnsClean(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("X\n")

	err := d.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, env.program.calls)
	assert.Zero(t, env.installer.calls)
	assert.Zero(t, env.validator.calls)
}

func TestRetryLimitExhaustionIsFatal(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("9\n8\n7\n")

	err := d.Run(context.Background())

	assert.ErrorIs(t, err, errdefs.ErrRetryLimitExceeded)
	assert.Zero(t, env.program.calls)
	assert.Zero(t, env.installer.calls)
	assert.Zero(t, env.validator.calls)
}

func TestInvalidInputCountsUpAndValidInputResets(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("")
	ctx := context.Background()

	state := State{}
	var done bool
	var err error

	state, done, err = d.step(ctx, state, "9")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, state.Retries)

	state, done, err = d.step(ctx, state, "9")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 2, state.Retries)

	// Installer runs unconditionally and resets the counter.
	state, done, err = d.step(ctx, state, "2")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 0, state.Retries)
	assert.Equal(t, 1, env.installer.calls)
}

func TestRunProgramRefusesWithoutEnvironmentMarker(t *testing.T) {
	env := newTestEnv(t)
	env.prepareConfig(t)
	d := env.dispatcher("")

	state, done, err := d.step(context.Background(), State{Retries: 1}, "1")

	require.NoError(t, err)
	assert.False(t, done)
	assert.Zero(t, env.program.calls)
	// Precondition failures leave the retry counter untouched.
	assert.Equal(t, 1, state.Retries)
}

func TestRunProgramRefusesWithoutConfig(t *testing.T) {
	env := newTestEnv(t)
	env.prepareVenv(t)
	d := env.dispatcher("")

	_, done, err := d.step(context.Background(), State{}, "1")

	require.NoError(t, err)
	assert.False(t, done)
	assert.Zero(t, env.program.calls)
}

func TestRunProgramDispatchesWhenPreconditionsHold(t *testing.T) {
	env := newTestEnv(t)
	env.prepareVenv(t)
	env.prepareConfig(t)
	d := env.dispatcher("")

	state, done, err := d.step(context.Background(), State{Retries: 2}, "1")

	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, env.program.calls)
	assert.Equal(t, 0, state.Retries)
}

func TestValidateRequiresEnvironmentMarker(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("")

	_, _, err := d.step(context.Background(), State{}, "3")
	require.NoError(t, err)
	assert.Zero(t, env.validator.calls)

	env.prepareVenv(t)
	_, _, err = d.step(context.Background(), State{}, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, env.validator.calls)
}

func TestSubprocessFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.program.exitCode = 3
	env.prepareVenv(t)
	env.prepareConfig(t)
	d := env.dispatcher("1\nx\n")

	err := d.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, env.program.calls)
}

func TestInstallerRunsUnconditionally(t *testing.T) {
	env := newTestEnv(t)
	// No venv, no config.
	d := env.dispatcher("2\nx\n")

	err := d.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, env.installer.calls)
}

func TestExhaustedInputEndsLoopCleanly(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("")

	err := d.Run(context.Background())

	require.NoError(t, err)
}

func TestInvalidSequenceBelowLimitThenInstall(t *testing.T) {
	env := newTestEnv(t)
	d := env.dispatcher("9\n9\n2\nx\n")

	err := d.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, env.installer.calls)
	assert.Zero(t, env.program.calls)
	assert.Zero(t, env.validator.calls)
}
