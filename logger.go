package main

import (
	"os"

	"go.uber.org/zap"
)

var logger *zap.Logger

// initLogger builds the global logger. Production config (JSON, info level)
// when ENV=production, development config (console, debug level) otherwise.
func initLogger() {
	var err error
	if os.Getenv("ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	zap.ReplaceGlobals(logger)
}

// syncLogger flushes buffered log entries. Sync errors on stderr sinks are
// expected on some platforms and ignored.
func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
