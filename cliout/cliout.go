// Package cliout formats command output as human-readable text or JSON.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	FormatDefault Format = "default"
	FormatJSON    Format = "json"
)

// ANSI escape codes.
const (
	Reset        = "\033[0m"
	Bold         = "\033[1m"
	Dim          = "\033[2m"
	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolDot     = "•"
)

var (
	mu     sync.RWMutex
	format           = FormatDefault
	out    io.Writer = os.Stdout
	color            = detectColor(os.Stdout)
)

// detectColor enables color only for terminals and honors NO_COLOR.
func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SetFormat sets the global output format. "" selects the default format.
func SetFormat(f string) error {
	mu.Lock()
	defer mu.Unlock()
	switch Format(f) {
	case FormatDefault, "":
		format = FormatDefault
	case FormatJSON:
		format = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", f)
	}
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return format
}

// IsJSON reports whether the output format is JSON.
func IsJSON() bool { return GetFormat() == FormatJSON }

// SetOutput redirects output to w and disables color unless w is a terminal.
// It returns a function restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevColor := out, color
	out = w
	color = false
	if f, ok := w.(*os.File); ok {
		color = detectColor(f)
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out, color = prevOut, prevColor
	}
}

// SetColor forces color on or off.
func SetColor(enabled bool) {
	mu.Lock()
	color = enabled
	mu.Unlock()
}

func writer() (io.Writer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return out, color
}

func paint(code, s string) string {
	if _, c := writer(); !c {
		return s
	}
	return code + s + Reset
}

func printf(format string, args ...any) {
	w, _ := writer()
	fmt.Fprintf(w, format, args...)
}

// PrintJSON writes data as indented JSON.
func PrintJSON(data any) error {
	w, _ := writer()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Print writes data as JSON in JSON mode and calls formatter otherwise.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header underlined with '='.
func Header(text string) {
	printf("\n%s\n%s\n", paint(Bold, text), strings.Repeat("=", len(text)))
}

// Success prints a message prefixed with a green check mark.
func Success(format string, args ...any) {
	printf("%s %s\n", paint(BrightGreen, SymbolCheck), fmt.Sprintf(format, args...))
}

// Error prints a message prefixed with a red cross.
func Error(format string, args ...any) {
	printf("%s %s\n", paint(BrightRed, SymbolCross), fmt.Sprintf(format, args...))
}

// Warning prints a message prefixed with a yellow triangle.
func Warning(format string, args ...any) {
	printf("%s  %s\n", paint(BrightYellow, SymbolWarning), fmt.Sprintf(format, args...))
}

// Info prints a message prefixed with a blue info sign.
func Info(format string, args ...any) {
	printf("%s  %s\n", paint(BrightBlue, SymbolInfo), fmt.Sprintf(format, args...))
}

// Bullet prints an indented bulleted item.
func Bullet(format string, args ...any) {
	printf("  %s %s\n", SymbolDot, fmt.Sprintf(format, args...))
}

// Label prints an aligned label and value pair.
func Label(label, value string) {
	printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Status colors a status word: green for ok/pass, yellow for warnings, red
// for failures.
func Status(status string) string {
	switch strings.ToLower(status) {
	case "ok", "pass", "success", "healthy":
		return paint(BrightGreen, status)
	case "warning", "skip", "validation":
		return paint(BrightYellow, status)
	case "error", "fail", "failure":
		return paint(BrightRed, status)
	default:
		return status
	}
}

// TableRow maps column headers to cell values.
type TableRow map[string]string

// Table prints rows under the given headers with padded columns.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}
	widths := make(map[string]int, len(headers))
	for _, h := range headers {
		widths[h] = len(h)
		for _, row := range rows {
			widths[h] = max(widths[h], len(row[h]))
		}
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for _, h := range headers {
		fmt.Fprintf(&sb, "%-*s  ", widths[h], h)
	}
	sb.WriteString("\n   ")
	for _, h := range headers {
		sb.WriteString(strings.Repeat("─", widths[h]) + "  ")
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString("   ")
		for _, h := range headers {
			fmt.Fprintf(&sb, "%-*s  ", widths[h], row[h])
		}
		sb.WriteByte('\n')
	}
	printf("%s", sb.String())
}
