// Package logging builds the file-backed logger. The TUI owns the
// terminal, so log output always goes to a file under the repo's .rig
// directory, never to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "rig.log"

// New opens <repoRoot>/.rig/logs/rig.log and returns a production
// logger writing to it. The returned cleanup syncs the logger; call it
// on exit.
func New(repoRoot string, verbose bool) (*zap.Logger, func(), error) {
	dir := filepath.Join(repoRoot, ".rig", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{filepath.Join(dir, logFileName)}
	config.ErrorOutputPaths = config.OutputPaths
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
