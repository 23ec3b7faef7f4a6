package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

// logOutput is where the log goes when --verbose is not set. It is nil when
// file logging could not be set up.
var logOutput io.Writer

func getLogFilePath() (string, error) {
	dir, err := gap.NewScope(gap.User, "folio").CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folio.log"), nil
}

func setupLog() (func() error, error) {
	// Log to file, if set
	logFile, err := getLogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		// log disabled
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		// log disabled
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	logOutput = f
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}

// mirrorLogToStderr additionally writes the log to stderr.
func mirrorLogToStderr() {
	log.SetLevel(log.DebugLevel)
	if logOutput == nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.MultiWriter(logOutput, os.Stderr))
}
