package entrypoint

import (
	"fmt"
	"os"
	"path/filepath"
)

// VenvActivation mirrors what `source .venv/bin/activate` does to a shell:
// VIRTUAL_ENV is set and the venv bin directory is prepended to PATH. It is
// acquired immediately before an entry point runs and released immediately
// after, on every return path, so the process never leaks an activated
// environment between menu iterations.
type VenvActivation struct {
	prevPath string
	prevVenv string
	hadVenv  bool
	released bool
}

func ActivateVenv(venvDir string) (*VenvActivation, error) {
	binDir := filepath.Join(venvDir, "bin")
	if info, err := os.Stat(binDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("virtual environment bin directory missing: %s", binDir)
	}

	a := &VenvActivation{
		prevPath: os.Getenv("PATH"),
	}
	a.prevVenv, a.hadVenv = os.LookupEnv("VIRTUAL_ENV")

	if err := os.Setenv("VIRTUAL_ENV", venvDir); err != nil {
		return nil, err
	}
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+a.prevPath); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// Release restores the pre-activation environment. Safe to call twice.
func (a *VenvActivation) Release() {
	if a == nil || a.released {
		return
	}
	a.released = true

	os.Setenv("PATH", a.prevPath)
	if a.hadVenv {
		os.Setenv("VIRTUAL_ENV", a.prevVenv)
	} else {
		os.Unsetenv("VIRTUAL_ENV")
	}
}
