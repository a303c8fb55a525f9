//go:build windows
// +build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// terminalWidth asks the Windows console for its buffer width, falling back
// to a conservative default when stdout is not a console (piped output).
func terminalWidth() int {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(os.Stdout.Fd()), &info); err != nil {
		return defaultTerminalWidth
	}
	width := int(info.Window.Right-info.Window.Left) + 1
	if width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
