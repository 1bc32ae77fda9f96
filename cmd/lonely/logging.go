package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "lonely.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging routes the standard logger to logs/lonely.log when debug is set
// The terminal belongs to the renderer, so without debug all output is discarded
// The returned file is nil when logging is disabled or the log cannot be opened
func setupLogging(debug bool) *os.File {
	return setupLoggingIn(logDir, debug)
}

func setupLoggingIn(dir string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := openLog(dir, time.Now())
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[MAIN] logging started, pid %d", os.Getpid())
	return f
}

// openLog appends to dir/lonely.log, first moving a log past maxLogSize aside
func openLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, rotatedLogName(now))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func rotatedLogName(now time.Time) string {
	return fmt.Sprintf("lonely-%s.log", now.Format("20060102-150405"))
}
