package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// ColorText applies color formatting to text based on the color name
func ColorText(text, colorName string) string {
	switch colorName {
	case "red":
		return color.New(color.FgRed, color.Bold).Sprint(text)
	case "yellow":
		return color.New(color.FgYellow, color.Bold).Sprint(text)
	case "cyan":
		return color.New(color.FgCyan, color.Bold).Sprint(text)
	case "green":
		return color.New(color.FgGreen, color.Bold).Sprint(text)
	default:
		return text
	}
}

// FormatDuration renders a run duration compactly: 850ms, 12.3s, 4m05s, 1h02m
func FormatDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "N/A"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// DecodeText turns captured process output into displayable text. Invalid
// UTF-8 sequences become U+FFFD so decoding never fails.
func DecodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// ResolvePath returns the absolute form of path and the working directory it
// was resolved against. Absolute paths are returned unchanged.
func ResolvePath(path string) (string, string) {
	wd, err := os.Getwd()
	if err != nil {
		return path, ""
	}
	if filepath.IsAbs(path) {
		return path, wd
	}
	return filepath.Join(wd, path), wd
}

// CommandPath returns the path to hand to exec for a program that lives
// relative to the working directory. A bare name gets a "./" prefix so it is
// not looked up on $PATH.
func CommandPath(path string) string {
	if path == "" || filepath.IsAbs(path) || strings.ContainsRune(path, '/') || strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return "." + string(filepath.Separator) + path
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal on stdout, or 80 when it
// cannot be determined
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// StripANSI removes ANSI color codes from a string to get actual display width
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// GetDisplayWidth calculates the actual display width of a string
func GetDisplayWidth(s string) int {
	clean := StripANSI(s)
	return runewidth.StringWidth(clean)
}

// PadToWidth pads a string to a specific display width
func PadToWidth(s string, width int) string {
	actualWidth := GetDisplayWidth(s)
	if actualWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-actualWidth)
}

// FitToWidth truncates plain text with an ellipsis, then pads it, so the
// result occupies exactly width cells.
func FitToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return PadToWidth(runewidth.Truncate(s, width, "…"), width)
}
