package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/lonely-engine/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			// Restore terminal to sane state immediately
			terminal.EmergencyReset(os.Stdout)

			// Use \r\n for raw mode compatibility to avoid zig-zag output
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mLONELY CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lonely: %v\n", err)
		os.Exit(1)
	}
}
