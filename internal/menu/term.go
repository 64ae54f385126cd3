package menu

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const clearSeq = "\033[2J\033[H"

// IsTerminal reports whether f is a real terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SetupTerminal sets the window title and requests a 107x24 window. Both
// are no-ops when output is not a terminal.
func SetupTerminal(out *os.File, title string) {
	if !IsTerminal(out) {
		return
	}
	fmt.Fprintf(out, "\033]0;%s\007", title)
	// CSI 8 resizes xterm-compatible terminals; rendering assumes exactly
	// Width columns.
	fmt.Fprintf(out, "\033[8;24;%dt", Width)
}

func (d *Dispatcher) clearScreen() {
	fmt.Fprint(d.Out, clearSeq)
}
