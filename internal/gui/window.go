// Package gui hosts the launcher in a desktop window.
package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/stridesearch/sslaunch/internal/launcher"
	"github.com/stridesearch/sslaunch/internal/model"
	"github.com/stridesearch/sslaunch/internal/output"
)

// MinSize is the smallest window the shell lays out.
var MinSize = fyne.NewSize(300, 300)

// Shell is the desktop window: a button docked on top and a scrollable text
// region filling the rest of the window.
type Shell struct {
	logger  *zap.Logger
	handler *launcher.Handler
	ctx     context.Context
	cancel  context.CancelFunc

	window fyne.Window
	button *widget.Button
	text   *widget.RichText
	scroll *container.Scroll

	// goFn starts background work; doFn marshals a callback onto the UI
	// goroutine. Tests replace both with synchronous calls.
	goFn func(func())
	doFn func(func())
}

// New builds the window on app. Closing the window cancels ctx for any run
// still in flight.
func New(ctx context.Context, app fyne.App, logger *zap.Logger, handler *launcher.Handler) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &Shell{
		logger:  logger,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		goFn:    func(f func()) { go f() },
		doFn:    fyne.Do,
	}

	s.window = app.NewWindow(model.WindowTitle)
	s.button = widget.NewButton(model.ButtonLabel, s.onClick)
	s.text = widget.NewRichText()
	s.text.Wrapping = fyne.TextWrapOff
	s.scroll = container.NewScroll(s.text)
	s.scroll.SetMinSize(fyne.NewSize(MinSize.Width, MinSize.Height-s.button.MinSize().Height))

	s.window.SetContent(container.NewBorder(s.button, nil, nil, nil, s.scroll))
	s.window.Resize(MinSize)
	s.window.SetOnClosed(func() {
		s.logger.Debug("Window closed")
		s.cancel()
	})
	return s
}

// Run shows the window and blocks until it is closed.
func (s *Shell) Run() {
	s.window.ShowAndRun()
}

// onClick is the button callback. The program runs off the UI goroutine and
// the button stays disabled until its output has been applied.
func (s *Shell) onClick() {
	s.logger.Info("GUI: Run button clicked")
	s.button.Disable()

	s.goFn(func() {
		record, result, err := s.handler.Execute(s.ctx)
		s.doFn(func() {
			s.finish(record, result, err)
		})
	})
}

func (s *Shell) finish(record model.RunRecord, result model.Result, err error) {
	s.button.Enable()

	switch {
	case errors.Is(err, launcher.ErrBusy):
		return
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		dialog.ShowError(withFindings(err, record.Findings), s.window)
		return
	}

	s.handler.Apply(result)
	s.render()
}

// render rebuilds the text region from the buffer and scrolls to the end.
func (s *Shell) render() {
	segs := s.handler.Buffer().Segments()
	out := make([]widget.RichTextSegment, 0, len(segs))
	for _, seg := range segs {
		style := widget.RichTextStyle{
			Inline:    true,
			TextStyle: fyne.TextStyle{Monospace: true},
		}
		if seg.Stream == output.Stderr {
			style.ColorName = theme.ColorNameError
		}
		out = append(out, &widget.TextSegment{Text: seg.Text, Style: style})
	}
	s.text.Segments = out
	s.text.Refresh()
	s.text.Resize(s.text.MinSize().Max(s.scroll.Size()))
	s.scroll.ScrollToBottom()
}

func withFindings(err error, findings []string) error {
	if len(findings) == 0 {
		return err
	}
	return fmt.Errorf("%w\n\n%s", err, strings.Join(findings, "\n"))
}
