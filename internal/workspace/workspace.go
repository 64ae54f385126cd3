package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/chat-linux-gguf/chatmenu/internal/errdefs"
)

// Default layout of the Chat-Linux-Gguf tree the menu fronts.
const (
	DefaultLauncher   = "launcher.py"
	DefaultInstaller  = "installer.py"
	DefaultValidator  = "validation.py"
	DefaultVenvDir    = ".venv"
	DefaultConfigFile = "data/persistent.json"
)

// Workspace resolves and checks the files the dispatcher depends on. All
// lookups go through an afero.Fs so tests can run against an in-memory tree.
type Workspace struct {
	fs   afero.Fs
	root string

	Launcher   string
	Installer  string
	Validator  string
	VenvDir    string
	ConfigFile string
}

func New(fs afero.Fs, root string) *Workspace {
	return &Workspace{
		fs:         fs,
		root:       root,
		Launcher:   DefaultLauncher,
		Installer:  DefaultInstaller,
		Validator:  DefaultValidator,
		VenvDir:    DefaultVenvDir,
		ConfigFile: DefaultConfigFile,
	}
}

func (w *Workspace) Root() string { return w.root }

func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.root, rel)
}

// VenvMarker is the file whose presence signals a prepared environment.
func (w *Workspace) VenvMarker() string {
	return filepath.Join(w.root, w.VenvDir, "bin", "activate")
}

// VenvPython is the interpreter inside the virtual environment.
func (w *Workspace) VenvPython() string {
	return filepath.Join(w.root, w.VenvDir, "bin", "python")
}

func (w *Workspace) fileExists(path string) bool {
	info, err := w.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// CheckEntryPoints verifies the three entry-point scripts exist. A missing
// script is a startup error and fatal to the whole process.
func (w *Workspace) CheckEntryPoints() error {
	for _, script := range []string{w.Launcher, w.Installer, w.Validator} {
		if !w.fileExists(w.Path(script)) {
			return errdefs.NewCustomError(errdefs.ErrTypeStartup,
				fmt.Sprintf("required script %s not found in %s", script, w.root))
		}
	}
	return nil
}

// HasEnvMarker reports whether the virtual environment is prepared.
func (w *Workspace) HasEnvMarker() bool {
	return w.fileExists(w.VenvMarker())
}

// CheckEnvironment returns a recoverable precondition error when the
// environment marker is absent.
func (w *Workspace) CheckEnvironment() error {
	if !w.HasEnvMarker() {
		return errdefs.NewCustomError(errdefs.ErrTypePrecondition,
			fmt.Sprintf("virtual environment not found at %s, run the installer first", filepath.Join(w.root, w.VenvDir)))
	}
	return nil
}

// CheckConfig returns a recoverable precondition error when the application
// config file is absent. The file's contents are the launcher's business.
func (w *Workspace) CheckConfig() error {
	if !w.fileExists(w.Path(w.ConfigFile)) {
		return errdefs.NewCustomError(errdefs.ErrTypePrecondition,
			fmt.Sprintf("config file %s not found, run the installer first", w.ConfigFile))
	}
	return nil
}
