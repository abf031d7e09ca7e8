package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/stridesearch/sslaunch/internal/model"
	"github.com/stridesearch/sslaunch/internal/util"
)

// getStateIcon returns a Unicode icon for the run status
func getStateIcon(status model.RunStatus) string {
	switch status {
	case model.StatusSucceeded:
		return "✓"
	case model.StatusFailed, model.StatusLaunchErr:
		return "✗"
	case model.StatusCancelled:
		return "⏹"
	default:
		return "•"
	}
}

func statusColor(status model.RunStatus) string {
	switch status {
	case model.StatusSucceeded:
		return "green"
	case model.StatusFailed, model.StatusLaunchErr:
		return "red"
	default:
		return "yellow"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderSummary renders one table row per run of the session
func RenderSummary(records []model.RunRecord, width int) string {
	if width < 60 {
		width = 60
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetAllowedRowLength(width)
	tw.SetTitle(util.ColorText(fmt.Sprintf("%s session: %d run(s)", model.WindowTitle, len(records)), "cyan"))
	tw.AppendHeader(table.Row{"#", "Run", "Status", "Exit", "Duration", "Stdout", "Stderr", "Notes"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, WidthMax: width / 3},
	})

	for i, r := range records {
		status := r.Status()
		exit := "-"
		if r.Launched && r.Err == nil {
			exit = fmt.Sprintf("%d", r.ExitCode)
		}
		tw.AppendRow(table.Row{
			i + 1,
			shortID(r.ID),
			util.ColorText(getStateIcon(status)+" "+string(status), statusColor(status)),
			exit,
			util.FormatDuration(r.Duration),
			util.FormatBytes(r.StdoutBytes),
			util.FormatBytes(r.StderrBytes),
			strings.Join(r.Findings, " "),
		})
	}
	return tw.Render()
}

// PrintSummary writes the session table to w. Nothing is written when no
// run happened.
func PrintSummary(w io.Writer, records []model.RunRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(w, RenderSummary(records, util.TerminalWidth()))
}
