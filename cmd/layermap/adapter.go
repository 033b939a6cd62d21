package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"layermap/internal/hostadapter"
)

// slogAdapter reports analyzer progress through the process-wide slog
// logger, used whenever the terminal UI is not active.
type slogAdapter struct{}

func (slogAdapter) Progress(stage hostadapter.Stage, message string, percent *int) {
	if percent != nil {
		slog.Info(message, "stage", stage, "percent", *percent)
		return
	}
	slog.Info(message, "stage", stage)
}

func (slogAdapter) Error(kind, path string, cause error) {
	slog.Warn("analysis error", "kind", kind, "path", path, "error", cause)
}

// uiAdapter writes progress through slog (which is redirected to a log file
// in -ui mode) rather than into the bubbletea program's list view, which
// only refreshes on a completed run.
type uiAdapter struct {
	program *tea.Program
}

func (a uiAdapter) Progress(stage hostadapter.Stage, message string, percent *int) {
	slogAdapter{}.Progress(stage, message, percent)
}

func (a uiAdapter) Error(kind, path string, cause error) {
	slogAdapter{}.Error(kind, path, cause)
}
