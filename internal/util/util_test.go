package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestColorText(t *testing.T) {
	// Force color output for testing
	color.NoColor = false

	cases := []struct {
		text      string
		colorName string
		check     func(string) bool
	}{
		{
			text:      "hello",
			colorName: "red",
			check: func(s string) bool {
				// Check for red color code start (31) and the text
				return strings.Contains(s, "\x1b[31") && strings.Contains(s, "hello")
			},
		},
		{
			text:      "ok",
			colorName: "green",
			check: func(s string) bool {
				return strings.Contains(s, "\x1b[32") && strings.Contains(s, "ok")
			},
		},
		{
			text:      "plain",
			colorName: "blue",
			check: func(s string) bool {
				return s == "plain"
			},
		},
		{
			text:      "world",
			colorName: "unknown",
			check: func(s string) bool {
				return s == "world"
			},
		},
	}

	for _, tc := range cases {
		got := ColorText(tc.text, tc.colorName)
		if !tc.check(got) {
			t.Errorf("ColorText(%q, %q) = %q, failed check", tc.text, tc.colorName, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "negative", d: -time.Second, want: "N/A"},
		{name: "millis", d: 850 * time.Millisecond, want: "850ms"},
		{name: "seconds", d: 12300 * time.Millisecond, want: "12.3s"},
		{name: "minutes", d: 4*time.Minute + 5*time.Second, want: "4m05s"},
		{name: "hours", d: time.Hour + 2*time.Minute, want: "1h02m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.d); got != tc.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tc := range cases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	if got := DecodeText([]byte("hello\n")); got != "hello\n" {
		t.Errorf("DecodeText(valid) = %q", got)
	}
	if got := DecodeText([]byte{'a', 0xff, 'b'}); got != "a�b" {
		t.Errorf("DecodeText(invalid) = %q, want replacement character", got)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, gotDir := ResolvePath("../build/bin/ssLLDataTest.exe")
	want := filepath.Join(filepath.Dir(wd), "build", "bin", "ssLLDataTest.exe")
	if got != want {
		t.Errorf("ResolvePath(relative) = %q, want %q", got, want)
	}
	if gotDir != wd {
		t.Errorf("ResolvePath dir = %q, want %q", gotDir, wd)
	}

	abs := filepath.Join(dir, "tool")
	if got, _ := ResolvePath(abs); got != abs {
		t.Errorf("ResolvePath(absolute) = %q, want %q", got, abs)
	}
}

func TestStripANSI(t *testing.T) {
	input := "\x1b[31mHello\x1b[0m World"
	want := "Hello World"
	got := StripANSI(input)
	if got != want {
		t.Errorf("StripANSI(%q) = %q, want %q", input, got, want)
	}
}

func TestGetDisplayWidth(t *testing.T) {
	input := "\x1b[31mHello\x1b[0m"
	want := 5
	got := GetDisplayWidth(input)
	if got != want {
		t.Errorf("GetDisplayWidth(%q) = %d, want %d", input, got, want)
	}
}

func TestPadToWidth(t *testing.T) {
	cases := []struct {
		input string
		width int
		want  string
	}{
		{"Hello", 10, "Hello     "},
		{"Hello", 5, "Hello"},
		{"Hello", 3, "Hello"},
	}

	for _, tc := range cases {
		got := PadToWidth(tc.input, tc.width)
		if got != tc.want {
			t.Errorf("PadToWidth(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
		}
	}
}

func TestFitToWidth(t *testing.T) {
	cases := []struct {
		input string
		width int
		want  string
	}{
		{"exit 0", 8, "exit 0  "},
		{"launch error", 8, "launch …"},
		{"anything", 0, ""},
	}

	for _, tc := range cases {
		if got := FitToWidth(tc.input, tc.width); got != tc.want {
			t.Errorf("FitToWidth(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
		}
	}
}

func TestCommandPath(t *testing.T) {
	local := "." + string(filepath.Separator)
	abs := filepath.Join(t.TempDir(), "ssLLDataTest.exe")

	cases := []struct {
		name string
		path string
		want string
	}{
		{name: "bare name", path: "ssLLDataTest.exe", want: local + "ssLLDataTest.exe"},
		{name: "relative", path: "../build/bin/ssLLDataTest.exe", want: "../build/bin/ssLLDataTest.exe"},
		{name: "dot slash", path: "./ssLLDataTest.exe", want: "./ssLLDataTest.exe"},
		{name: "absolute", path: abs, want: abs},
		{name: "empty", path: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CommandPath(tc.path); got != tc.want {
				t.Errorf("CommandPath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
