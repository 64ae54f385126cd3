package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chat-linux-gguf/chatmenu/internal/entrypoint"
	"github.com/chat-linux-gguf/chatmenu/internal/errdefs"
	"github.com/chat-linux-gguf/chatmenu/internal/log"
	"github.com/chat-linux-gguf/chatmenu/internal/menu"
	"github.com/chat-linux-gguf/chatmenu/internal/osinfo"
	"github.com/chat-linux-gguf/chatmenu/internal/workspace"
)

const windowTitle = "Chat-Linux-Gguf"

var rootCmd = &cobra.Command{
	Use:   "chatmenu",
	Short: "Chat-Linux-Gguf launcher menu",
	Long:  "Terminal front door for Chat-Linux-Gguf.\n\nPresents the launch/install/validate menu and dispatches the matching\nPython entry point under the project's virtual environment.",
	Run:   runInteractiveMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatmenu %s\n", Version)
	},
}

var runScriptCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the main program directly",
	Long:  "Run launcher.py under the virtual environment without showing the menu",
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ws *workspace.Workspace) (entrypoint.EntryPoint, error) {
			if err := ws.CheckEnvironment(); err != nil {
				return nil, err
			}
			if err := ws.CheckConfig(); err != nil {
				return nil, err
			}
			return programEntryPoint(ws), nil
		})
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the installer directly",
	Long:  "Run installer.py without showing the menu",
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ws *workspace.Workspace) (entrypoint.EntryPoint, error) {
			return installerEntryPoint(ws), nil
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run validation directly",
	Long:  "Run validation.py under the virtual environment without showing the menu",
	Run: func(cmd *cobra.Command, args []string) {
		runOneShot(func(ws *workspace.Workspace) (entrypoint.EntryPoint, error) {
			if err := ws.CheckEnvironment(); err != nil {
				return nil, err
			}
			return validatorEntryPoint(ws), nil
		})
	},
}

// newWorkspace resolves the working directory, loads optional .env
// overrides and verifies the entry-point scripts exist. Any failure here
// is a startup error.
func newWorkspace() (*workspace.Workspace, error) {
	// Optional overrides for non-standard trees; absence is fine.
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeStartup,
			fmt.Sprintf("cannot establish working directory: %v", err))
	}

	ws := workspace.New(afero.NewOsFs(), wd)
	applyEnvOverrides(ws)

	if err := ws.CheckEntryPoints(); err != nil {
		return nil, err
	}
	return ws, nil
}

func applyEnvOverrides(ws *workspace.Workspace) {
	if v := os.Getenv("CHATMENU_LAUNCHER"); v != "" {
		ws.Launcher = v
	}
	if v := os.Getenv("CHATMENU_INSTALLER"); v != "" {
		ws.Installer = v
	}
	if v := os.Getenv("CHATMENU_VALIDATOR"); v != "" {
		ws.Validator = v
	}
	if v := os.Getenv("CHATMENU_VENV_DIR"); v != "" {
		ws.VenvDir = v
	}
	if v := os.Getenv("CHATMENU_CONFIG"); v != "" {
		ws.ConfigFile = v
	}
}

func programEntryPoint(ws *workspace.Workspace) *entrypoint.Script {
	return &entrypoint.Script{
		Label:       "main program",
		Dir:         ws.Root(),
		Path:        ws.Path(ws.Launcher),
		Interpreter: ws.VenvPython,
		Venv:        func() string { return filepath.Join(ws.Root(), ws.VenvDir) },
	}
}

func installerEntryPoint(ws *workspace.Workspace) *entrypoint.Script {
	return &entrypoint.Script{
		Label: "installer",
		Dir:   ws.Root(),
		Path:  ws.Path(ws.Installer),
		Interpreter: func() string {
			// The installer creates the venv; before that only the
			// system interpreter exists.
			if ws.HasEnvMarker() {
				return ws.VenvPython()
			}
			return "python3"
		},
		Venv: func() string {
			if ws.HasEnvMarker() {
				return filepath.Join(ws.Root(), ws.VenvDir)
			}
			return ""
		},
	}
}

func validatorEntryPoint(ws *workspace.Workspace) *entrypoint.Script {
	return &entrypoint.Script{
		Label:       "validator",
		Dir:         ws.Root(),
		Path:        ws.Path(ws.Validator),
		Interpreter: ws.VenvPython,
		Venv:        func() string { return filepath.Join(ws.Root(), ws.VenvDir) },
	}
}

func preflight() {
	info, err := osinfo.GetOSInfo(afero.NewOsFs())
	if err != nil {
		log.Warnf("host check: %v", err)
		return
	}
	if !info.IsRecommended() {
		log.Warnf("%s detected; the installer targets %s and may need adjustments",
			info.PrettyName, osinfo.RecommendedDistro)
	}
}

func runInteractiveMenu(cmd *cobra.Command, args []string) {
	ws, err := newWorkspace()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	preflight()
	menu.SetupTerminal(os.Stdout, windowTitle)

	dispatcher := &menu.Dispatcher{
		In:          os.Stdin,
		Out:         os.Stdout,
		WS:          ws,
		Program:     programEntryPoint(ws),
		Installer:   installerEntryPoint(ws),
		Validator:   validatorEntryPoint(ws),
		Interactive: menu.IsTerminal(os.Stdin) && menu.IsTerminal(os.Stdout),
	}

	if err := dispatcher.Run(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// runOneShot dispatches a single entry point outside the menu loop,
// propagating a non-zero subprocess exit code as the process exit code.
func runOneShot(build func(*workspace.Workspace) (entrypoint.EntryPoint, error)) {
	ws, err := newWorkspace()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	ep, err := build(ws)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	code, err := ep.Run(context.Background())
	if err != nil {
		log.Errorf("%s could not be started: %v", ep.Name(), err)
		os.Exit(1)
	}
	if code != 0 {
		log.Error(&errdefs.SubprocessError{Name: ep.Name(), ExitCode: code})
		os.Exit(code)
	}
	log.Infof("%s completed successfully", ep.Name())
}
