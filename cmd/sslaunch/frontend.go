package main

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"github.com/stridesearch/sslaunch/internal/model"
)

var errNoFrontend = errors.New("no display and no terminal available: set DISPLAY or run from a terminal")

// hasDisplay reports whether a desktop window can be opened on goos.
func hasDisplay(goos string, getenv func(string) string) bool {
	switch goos {
	case "darwin", "windows":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}

// selectFrontend resolves "auto" to the desktop window when a display is
// available, else to the terminal UI when stdout is a terminal.
func selectFrontend(requested model.Frontend, getenv func(string) string, isTTY bool) (model.Frontend, error) {
	return selectFrontendFor(runtime.GOOS, requested, getenv, isTTY)
}

func selectFrontendFor(goos string, requested model.Frontend, getenv func(string) string, isTTY bool) (model.Frontend, error) {
	switch requested {
	case model.FrontendGUI, model.FrontendTUI:
		return requested, nil
	}
	if hasDisplay(goos, getenv) {
		return model.FrontendGUI, nil
	}
	if isTTY {
		return model.FrontendTUI, nil
	}
	return "", errNoFrontend
}

// newLogger builds the zap logger. The terminal UI owns the screen, so it
// only logs when a log file is configured.
func newLogger(cfg *model.Config, frontend model.Frontend) (*zap.Logger, error) {
	if cfg.LogFile == "" && frontend == model.FrontendTUI {
		return zap.NewNop(), nil
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	if cfg.LogFile != "" {
		zcfg.OutputPaths = []string{cfg.LogFile}
		zcfg.ErrorOutputPaths = []string{cfg.LogFile}
	}
	return zcfg.Build()
}
