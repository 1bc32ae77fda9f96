// Package terminal provides direct ANSI terminal control for the frame loop.
//
// Features:
//   - Raw mode, alternate screen and hidden cursor on Init, restored on Fini
//   - Buffered output sink with explicit Flush
//   - Raw stdin input parsing with escape sequence handling
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
