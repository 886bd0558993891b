package main

import (
	"log/slog"
	"os"

	"github.com/fuzumoe/siteinsight-backend/internal/app"
)

var run = app.Run
var exitFunc = os.Exit

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		exitFunc(1)
	}
	slog.Info("server shut down cleanly")
}
