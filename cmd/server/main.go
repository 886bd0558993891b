package main

import (
	"log/slog"
	"os"

	"github.com/fuzumoe/siteinsight-backend/internal/app"
)

// run is a variable so it can be overridden in tests.
var run = app.Run

// exitFunc is a variable wrapping os.Exit so it can be overridden in tests.
var exitFunc = os.Exit

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		exitFunc(1)
	}
}
