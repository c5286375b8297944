package app

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/collabcloud/collab/internal/collab"
)

// newLogger creates a structured zap logger writing to logDir/collab.log
// and stderr. Returns the logger and a flush function for shutdown.
func newLogger(logDir string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "collab.log")
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logPath, "stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}

	flush := func() {
		// Stderr sync errors are expected on some platforms and ignored.
		_ = logger.Sync()
	}
	return logger, flush, nil
}

// zapAdapter wraps *zap.SugaredLogger to satisfy the collab.Logger
// interface's alternating key/value convention.
type zapAdapter struct {
	l *zap.SugaredLogger
}

func (a *zapAdapter) Debug(msg string, args ...any) { a.l.Debugw(msg, args...) }
func (a *zapAdapter) Info(msg string, args ...any)  { a.l.Infow(msg, args...) }
func (a *zapAdapter) Warn(msg string, args ...any)  { a.l.Warnw(msg, args...) }
func (a *zapAdapter) Error(msg string, args ...any) { a.l.Errorw(msg, args...) }

// Compile-time check.
var _ collab.Logger = (*zapAdapter)(nil)
