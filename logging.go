package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is the process-wide diagnostic logger. User-facing console output does not go through it.
var logger = zap.NewNop()

// setupLogger builds the diagnostic logger. Debug mode logs everything in the
// development format, otherwise only warnings and errors are emitted.
func setupLogger(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]interface{}{
		"appName":    "filehunter",
		"appVersion": version,
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	zap.ReplaceGlobals(logger)
	return nil
}
