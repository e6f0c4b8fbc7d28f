package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a console logger on stderr. Verbose enables debug level.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		config.DisableCaller = true
	}

	return config.Build()
}

// RunID identifies one invocation in logs and temporary file names.
type RunID string

// NewRunID returns a short random run identifier.
func NewRunID() RunID {
	return RunID(uuid.NewString()[:8])
}

// ForRun returns logger tagged with the run id.
func ForRun(logger *zap.Logger, runID RunID) *zap.Logger {
	return logger.With(zap.String("run_id", string(runID)))
}
