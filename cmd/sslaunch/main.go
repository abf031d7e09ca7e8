// Package main implements sslaunch - a launcher window for Stride Search.
// A button runs the Stride Search data test program and a text pane
// accumulates everything it printed.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stridesearch/sslaunch/internal/gui"
	"github.com/stridesearch/sslaunch/internal/launcher"
	"github.com/stridesearch/sslaunch/internal/model"
	"github.com/stridesearch/sslaunch/internal/output"
	"github.com/stridesearch/sslaunch/internal/tui"
	"github.com/stridesearch/sslaunch/internal/ui"
	"github.com/stridesearch/sslaunch/internal/util"
)

const appID = "io.stridesearch.sslaunch"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", util.ColorText("Error:", "red"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sslaunch",
		Short: "Run Stride Search and show its output",
		Long: `Opens the Stride Search window. Each click on "Run Stride Search" starts the
Stride Search data test program and appends what it printed to the window.

Environment:
  SSLAUNCH_EXECUTABLE    program to run (default: ` + model.DefaultExecutable + `)
  SSLAUNCH_FRONTEND      auto, gui or tui (default: auto)
  SSLAUNCH_SHOW_STDERR   also show standard error (default: false)
  SSLAUNCH_LOG_LEVEL     debug, info, warn or error (default: info)
  SSLAUNCH_LOG_FILE      write logs to this file`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := model.LoadConfigFromEnv()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
}

func run(parent context.Context, cfg *model.Config) error {
	if parent == nil {
		parent = context.Background()
	}

	frontend, err := selectFrontend(cfg.Frontend, os.Getenv, util.IsTerminal(os.Stdout))
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, frontend)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := launcher.NewHandler(logger, &util.RealRunner{}, output.New(), launcher.Options{
		Executable: cfg.Executable,
		ShowStderr: cfg.ShowStderr,
	})

	logger.Info("Starting launcher",
		zap.String("frontend", string(frontend)),
		zap.String("executable", cfg.Executable),
		zap.Bool("show_stderr", cfg.ShowStderr))

	switch frontend {
	case model.FrontendGUI:
		gui.New(ctx, app.NewWithID(appID), logger, handler).Run()
	case model.FrontendTUI:
		p := tea.NewProgram(tui.NewModel(ctx, logger, handler),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running TUI: %w", err)
		}
	}

	// A run may still be in flight when the window closes.
	stop()
	handler.Wait()

	logger.Info("Launcher closed", zap.Int("runs", len(handler.History())))
	ui.PrintSummary(os.Stdout, handler.History())
	return nil
}
