//go:build linux || darwin
// +build linux darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminalWidth asks the controlling terminal for its column count via
// TIOCGWINSZ, falling back to a conservative default when stdout is not a
// terminal (piped output, CI logs).
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultTerminalWidth
	}
	return int(ws.Col)
}
